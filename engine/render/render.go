// Package render turns constraints into the sentences players read, in one
// of several speaking voices. Rendering never feeds back into generation.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/rng"
)

// Voice is a speaking style.
type Voice string

const (
	Neutral    Voice = "neutral"
	Formal     Voice = "formal"
	Casual     Voice = "casual"
	Passionate Voice = "passionate"
)

// Voices lists every voice in player-seat order.
var Voices = []Voice{Formal, Casual, Passionate, Neutral}

// PlayerNames are the default seat names.
var PlayerNames = []string{"Alice", "Bob", "Carol", "Dave"}

// PlayerName returns the name for a zero-based seat.
func PlayerName(p int) string {
	return PlayerNames[p%len(PlayerNames)]
}

// PlayerVoice returns the voice for a zero-based seat.
func PlayerVoice(p int) Voice {
	return Voices[p%len(Voices)]
}

var prefixes = map[Voice][]string{
	Formal: {
		"It is essential that ",
		"I insist that ",
		"I require that ",
		"It is important that ",
	},
	Casual: {
		"I'd really like ",
		"I'd love for ",
		"I want ",
		"I'd prefer for ",
	},
	Passionate: {
		"I absolutely need ",
		"I really, really need ",
		"I desperately want ",
		"It's vital to me for ",
	},
}

// Every template uses must / must not / may so voices can rewrite the modal.
var templates = map[constraint.Kind]string{
	constraint.RoomWallColorIs:     "The {room} must be painted {color}.",
	constraint.RoomWallColorIsNot:  "The {room} must not be painted {color}.",
	constraint.RoomWallWarm:        "The {room} must be painted a warm color.",
	constraint.RoomWallCool:        "The {room} must be painted a cool color.",
	constraint.RoomHasType:         "The {room} must contain a {type}.",
	constraint.RoomNoType:          "The {room} must not contain a {type}.",
	constraint.RoomHasStyle:        "The {room} must contain at least one {style} item.",
	constraint.RoomNoStyle:         "The {room} must not contain any {style} items.",
	constraint.RoomHasColor:        "The {room} must contain at least one {color} object.",
	constraint.RoomNoColor:         "The {room} must not contain any {color} objects.",
	constraint.AreaHasType:         "The {area} must contain a {type}.",
	constraint.AreaNoType:          "The {area} must not contain any {types}.",
	constraint.AreaHasColor:        "The {area} must contain at least one {color} object.",
	constraint.AreaNoColor:         "The {area} must not contain any {color} objects.",
	constraint.AreaHasStyle:        "The {area} must contain at least one {style} item.",
	constraint.AreaNoStyle:         "The {area} must not contain any {style} items.",
	constraint.ExactlyNRoomsColor:  "Exactly {n} {rooms} must be painted {color}.",
	constraint.AtLeastNType:        "There must be at least {n} {types} in the house.",
	constraint.AtLeastNColor:       "There must be at least {n} {color} {objects} in the house.",
	constraint.AtLeastNStyle:       "There must be at least {n} {style} {objects} in the house.",
	constraint.NoColorInHouse:      "There must not be any {color} objects in the house.",
	constraint.AtLeastNWarm:        "There must be at least {n} warm-colored {objects} in the house.",
	constraint.AtLeastNCool:        "There must be at least {n} cool-colored {objects} in the house.",
	constraint.AllTypeSameColor:    "All {types} in the house must be {color}.",
	constraint.AllTypeSameStyle:    "All {types} in the house must be {style}.",
	constraint.ColorRoomCountEqual: "The number of {color} rooms must equal the number of {colorB} rooms.",
	constraint.TypeImpliesType:     "Any room with a {type} must also contain a {typeB}.",
	constraint.OneStylePerRoom:     "No room may contain more than one {style} item.",
}

// Sentence renders c in the neutral voice.
func Sentence(c constraint.Constraint) string {
	t, ok := templates[c.Kind]
	if !ok {
		return fmt.Sprintf("[%s] %s", c.Kind, c.Params)
	}
	return fill(t, c.Params)
}

// Voiced renders c in voice v. The opening phrase is drawn from r; a nil r
// takes the first phrase.
func Voiced(c constraint.Constraint, v Voice, r *rng.RNG) string {
	text := Sentence(c)
	opts := prefixes[v]
	if len(opts) == 0 {
		return text
	}
	prefix := opts[0]
	if r != nil {
		prefix = opts[r.Intn(len(opts))]
	}
	return prefix + transform(text, v) + "."
}

func fill(t string, p constraint.Params) string {
	pairs := []string{
		"{room}", p.Room,
		"{area}", p.Area,
		"{color}", p.Color.String(),
		"{colorB}", p.ColorB.String(),
		"{style}", strings.ToLower(p.Style.String()),
		"{types}", p.Type.Plural(),
		"{type}", strings.ToLower(p.Type.String()),
		"{typeB}", strings.ToLower(p.TypeB.String()),
		"{n}", fmt.Sprint(p.N),
		"{rooms}", plural(p.N, "room"),
		"{objects}", plural(p.N, "object"),
	}
	return strings.NewReplacer(pairs...).Replace(t)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

var (
	mustNot = regexp.MustCompile(`\bmust not\b`)
	must    = regexp.MustCompile(`\bmust\b`)
	mayNot  = regexp.MustCompile(`\bmay not\b`)
	may     = regexp.MustCompile(`\bmay\b`)
	spaces  = regexp.MustCompile(`  +`)
)

// transform rewrites a neutral sentence as the clause following a voice
// prefix: formal takes the subjunctive ("the kitchen be painted"), the
// others the infinitive ("the kitchen to be painted").
func transform(text string, v Voice) string {
	core := strings.TrimRight(text, ".")
	if core != "" {
		core = strings.ToLower(core[:1]) + core[1:]
	}

	if v == Formal {
		core = mustNot.ReplaceAllString(core, "not")
		core = must.ReplaceAllString(core, "")
		core = mayNot.ReplaceAllString(core, "not")
		core = may.ReplaceAllString(core, "")
		return spaces.ReplaceAllString(core, " ")
	}
	core = mustNot.ReplaceAllString(core, "not to")
	core = must.ReplaceAllString(core, "to")
	core = mayNot.ReplaceAllString(core, "not to")
	return may.ReplaceAllString(core, "to")
}
