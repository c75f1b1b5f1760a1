// Package export implements JSON serialization of generated scenarios and
// replay verification of loaded ones.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/engine/assign"
	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/move"
	"github.com/nathoo/decorum/engine/perturb"
	"github.com/nathoo/decorum/engine/render"
	"github.com/nathoo/decorum/engine/rng"
)

// FormatVersion is the document schema version.
const FormatVersion = 1

// Document is the JSON-serializable scenario format.
type Document struct {
	Version    int       `json:"version"`
	ID         uuid.UUID `json:"id"`
	Seed       int64     `json:"seed"`
	Players    int       `json:"players"`
	Difficulty string    `json:"difficulty"`
	Target     BoardDoc  `json:"target"`
	Start      BoardDoc  `json:"start"`
	Hands      []HandDoc `json:"hands"`
	Moves      []MoveDoc `json:"moves"`
	Search     SearchDoc `json:"search"`
	Verify     VerifyDoc `json:"verification"`
}

// BoardDoc is one board, room by room in layout order.
type BoardDoc struct {
	Variant string    `json:"variant"`
	Rooms   []RoomDoc `json:"rooms"`
}

// RoomDoc is one room's wall and occupied slots.
type RoomDoc struct {
	Name    string      `json:"name"`
	Wall    board.Color `json:"wall"`
	Objects []TokenDoc  `json:"objects"`
}

// TokenDoc is an object with its derived color spelled out.
type TokenDoc struct {
	Type  board.ObjectType `json:"type"`
	Style board.Style      `json:"style"`
	Color board.Color      `json:"color"`
}

// HandDoc is one player's constraints.
type HandDoc struct {
	Player      int             `json:"player"`
	Name        string          `json:"name"`
	Voice       render.Voice    `json:"voice"`
	Violated    int             `json:"violated"`
	Constraints []ConstraintDoc `json:"constraints"`
}

// ConstraintDoc is a constraint with its sentence and start-board status.
type ConstraintDoc struct {
	constraint.Constraint
	Text    string `json:"text"`
	OnStart bool   `json:"on_start"`
}

// MoveDoc is a logged move with its description.
type MoveDoc struct {
	move.Move
	Text string `json:"text"`
}

// SearchDoc records how the start board was found.
type SearchDoc struct {
	Config      perturb.Config `json:"config"`
	RNGPosition int64          `json:"rng_position"`
	Walked      int            `json:"walked"`
	Attempts    int            `json:"attempts"`
	Satisfied   int            `json:"satisfied"`
	Complete    bool           `json:"complete"`
	Candidates  int            `json:"candidates"`
}

// VerifyDoc mirrors engine.Verification.
type VerifyDoc struct {
	Total          int   `json:"total"`
	TargetFailures int   `json:"target_failures"`
	Violations     []int `json:"violations"`
	AllViolated    bool  `json:"all_violated"`
}

// Build converts a scenario to its document form. Sentences use the
// neutral voice so the document does not depend on a render seed.
func Build(s *engine.Scenario) *Document {
	v := s.Verify()
	doc := &Document{
		Version:    FormatVersion,
		ID:         s.ID,
		Seed:       s.Seed,
		Players:    s.Players,
		Difficulty: s.Difficulty,
		Target:     boardDoc(s.Target),
		Start:      boardDoc(s.Start),
		Search: SearchDoc{
			Config:      s.Config,
			RNGPosition: s.SearchPosition,
			Walked:      s.Walked,
			Attempts:    s.Attempts,
			Satisfied:   s.Satisfied,
			Complete:    s.Complete,
			Candidates:  s.Candidates,
		},
		Verify: VerifyDoc{
			Total:          v.Total,
			TargetFailures: len(v.TargetFailures),
			Violations:     v.Violations,
			AllViolated:    v.AllViolated,
		},
	}

	for p, cs := range s.Assignment {
		h := HandDoc{
			Player:      p + 1,
			Name:        render.PlayerName(p),
			Voice:       render.PlayerVoice(p),
			Violated:    v.Violations[p],
			Constraints: []ConstraintDoc{},
		}
		for _, c := range cs {
			h.Constraints = append(h.Constraints, ConstraintDoc{
				Constraint: c,
				Text:       render.Sentence(c),
				OnStart:    c.Evaluate(s.Start),
			})
		}
		doc.Hands = append(doc.Hands, h)
	}

	doc.Moves = []MoveDoc{}
	for _, m := range s.Moves {
		doc.Moves = append(doc.Moves, MoveDoc{Move: m, Text: m.Describe()})
	}
	return doc
}

// Marshal serializes a scenario to indented JSON.
func Marshal(s *engine.Scenario) ([]byte, error) {
	return json.MarshalIndent(Build(s), "", "  ")
}

func boardDoc(b *board.Board) BoardDoc {
	d := BoardDoc{Variant: b.Variant().String()}
	for _, r := range b.Rooms() {
		rd := RoomDoc{Name: r.Name, Wall: r.Wall, Objects: []TokenDoc{}}
		for _, tok := range r.Objects() {
			rd.Objects = append(rd.Objects, TokenDoc{Type: tok.Type, Style: tok.Style, Color: tok.Color()})
		}
		d.Rooms = append(d.Rooms, rd)
	}
	return d
}

// Load deserializes JSON bytes into a Document.
func Load(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported scenario version %d", doc.Version)
	}
	if doc.Hands == nil {
		doc.Hands = []HandDoc{}
	}
	if doc.Moves == nil {
		doc.Moves = []MoveDoc{}
	}
	return &doc, nil
}

// Board rebuilds a board from its document form.
func (bd BoardDoc) Board(players int) (*board.Board, error) {
	b := board.New(board.VariantFor(players))
	if bd.Variant != b.Variant().String() {
		return nil, fmt.Errorf("variant %q does not fit %d players", bd.Variant, players)
	}
	for _, rd := range bd.Rooms {
		if _, ok := b.Room(rd.Name); !ok {
			return nil, fmt.Errorf("unknown room %q", rd.Name)
		}
		if !rd.Wall.Valid() {
			return nil, fmt.Errorf("%s: missing or invalid wall color", rd.Name)
		}
		b.Paint(rd.Name, rd.Wall)
		for i, td := range rd.Objects {
			if !td.Type.Valid() {
				return nil, fmt.Errorf("%s object %d: missing or invalid type", rd.Name, i+1)
			}
			if !td.Style.Valid() {
				return nil, fmt.Errorf("%s %s: missing or invalid style", rd.Name, td.Type)
			}
			tok := board.Token{Type: td.Type, Style: td.Style}
			if tok.Color() != td.Color {
				return nil, fmt.Errorf("%s in %s: color %s does not match style", tok, rd.Name, td.Color)
			}
			var added bool
			if err := checked(func() { added = b.Add(rd.Name, tok) }); err != nil {
				return nil, fmt.Errorf("%s: %w", rd.Name, err)
			}
			if !added {
				return nil, fmt.Errorf("%s: duplicate %s slot", rd.Name, td.Type)
			}
		}
	}
	return b, nil
}

// Replay checks a loaded document for consistency: every constraint holds
// on the target, the move log leads from target to start, the recorded
// start-board statuses are accurate, and re-running the search from the
// recorded seed and generator position yields the same move log.
func Replay(doc *Document) error {
	target, err := doc.Target.Board(doc.Players)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	start, err := doc.Start.Board(doc.Players)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	b := target.Clone()
	for i, md := range doc.Moves {
		if err := applyChecked(b, md.Move); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, md.Text, err)
		}
	}
	if b.Fingerprint() != start.Fingerprint() {
		return fmt.Errorf("move log ends on a board that differs from the recorded start")
	}

	for _, h := range doc.Hands {
		for i, cd := range h.Constraints {
			var onTarget, onStart bool
			err := checked(func() {
				onTarget = cd.Evaluate(target)
				onStart = cd.Evaluate(start)
			})
			if err != nil {
				return fmt.Errorf("player %d rule %d: %w", h.Player, i+1, err)
			}
			if !onTarget {
				return fmt.Errorf("player %d rule %d (%s) is false on the target", h.Player, i+1, cd.Constraint)
			}
			if onStart != cd.OnStart {
				return fmt.Errorf("player %d rule %d: recorded start status %v, actual %v", h.Player, i+1, cd.OnStart, onStart)
			}
		}
	}
	return rerunSearch(doc, target)
}

// rerunSearch re-runs the perturbation search and compares its log with the
// recorded one.
func rerunSearch(doc *Document, target *board.Board) error {
	a := make(assign.Assignment, len(doc.Hands))
	for p, h := range doc.Hands {
		for _, cd := range h.Constraints {
			a[p] = append(a[p], cd.Constraint)
		}
	}

	var res perturb.Result
	err := checked(func() {
		res = perturb.Search(target, a, doc.Search.Config, rng.Restore(doc.Seed, doc.Search.RNGPosition))
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(res.Moves) != len(doc.Moves) {
		return fmt.Errorf("search does not reproduce the move log: %d moves, recorded %d", len(res.Moves), len(doc.Moves))
	}
	for i, m := range res.Moves {
		if m != doc.Moves[i].Move {
			return fmt.Errorf("search does not reproduce the move log: move %d is %s, recorded %s", i+1, m.Describe(), doc.Moves[i].Text)
		}
	}
	return nil
}

func applyChecked(b *board.Board, m move.Move) error {
	return checked(func() { move.Apply(b, m) })
}

// checked runs fn, converting a panic from malformed document data into an
// error.
func checked(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
