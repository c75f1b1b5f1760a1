// Package boardgen produces the hidden target board for a difficulty tier.
// Placement is biased toward patterns (themed styles, objects matching
// their wall) so the candidate pool has structure worth assigning.
package boardgen

import (
	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/rng"
	"github.com/nathoo/decorum/types"
)

// wallTries bounds the search for at least two distinct wall colors.
const wallTries = 100

type slot struct {
	room string
	typ  board.ObjectType
}

// Generate builds a target board for players on tier d. The result has at
// least two wall colors, at least one object of every type and, when the
// style palette allows, at least two distinct styles.
func Generate(players int, d types.Difficulty, r *rng.RNG) *board.Board {
	b := board.New(board.VariantFor(players))
	names := b.RoomNames()

	colors := sample(r, board.Colors, d.Colors)
	styles := sample(r, board.Styles, d.Styles)

	walls := make([]board.Color, len(names))
	for try := 0; try < wallTries; try++ {
		for i := range walls {
			walls[i] = colors[r.Intn(len(colors))]
		}
		if distinct(walls) >= 2 {
			break
		}
	}
	for i, name := range names {
		b.Paint(name, walls[i])
	}

	target := r.IntRange(d.ItemsMin, d.ItemsMax)
	slots := make([]slot, 0, len(names)*board.NumObjectTypes)
	for _, name := range names {
		for _, t := range board.ObjectTypes {
			slots = append(slots, slot{name, t})
		}
	}
	r.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })

	var themeType board.ObjectType
	var themeStyle board.Style
	if r.Chance(d.ThemeProb) {
		themeType = board.ObjectTypes[r.Intn(len(board.ObjectTypes))]
		themeStyle = styles[r.Intn(len(styles))]
	}

	for placed, s := range slots {
		if placed >= target {
			break
		}
		style := styles[r.Intn(len(styles))]

		if themeType != 0 && s.typ == themeType && r.Chance(d.ThemeAdherence) {
			style = themeStyle
		} else if r.Chance(d.PatternProb) {
			room, _ := b.Room(s.room)
			if match := board.StyleFor(s.typ, room.Wall); contains(styles, match) {
				style = match
			}
		}
		b.Add(s.room, board.Token{Type: s.typ, Style: style})
	}

	coverTypes(b, styles, r)
	varyStyles(b, styles, r)
	return b
}

// coverTypes adds one object of every type missing from the house.
func coverTypes(b *board.Board, styles []board.Style, r *rng.RNG) {
	for _, t := range board.ObjectTypes {
		if b.CountType(t) > 0 {
			continue
		}
		names := b.RoomNames()
		room := names[r.Intn(len(names))]
		b.Add(room, board.Token{Type: t, Style: styles[r.Intn(len(styles))]})
	}
}

// varyStyles restyles the first object in layout order when every object
// shares one style.
func varyStyles(b *board.Board, styles []board.Style, r *rng.RNG) {
	objs := b.Objects()
	if len(objs) == 0 || len(styles) < 2 {
		return
	}
	for _, o := range objs[1:] {
		if o.Style != objs[0].Style {
			return
		}
	}

	var others []board.Style
	for _, s := range styles {
		if s != objs[0].Style {
			others = append(others, s)
		}
	}
	for _, room := range b.Rooms() {
		if room.Has(objs[0].Type) {
			b.Swap(room.Name, board.Token{Type: objs[0].Type, Style: others[r.Intn(len(others))]})
			return
		}
	}
}

// sample returns n distinct elements of from in random order.
func sample[T any](r *rng.RNG, from []T, n int) []T {
	pool := append([]T(nil), from...)
	n = max(1, min(n, len(pool)))
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func distinct(cs []board.Color) int {
	seen := map[board.Color]bool{}
	for _, c := range cs {
		seen[c] = true
	}
	return len(seen)
}

func contains(styles []board.Style, s board.Style) bool {
	for _, x := range styles {
		if x == s {
			return true
		}
	}
	return false
}
