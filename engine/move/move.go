// Package move implements the four legal board actions. Each move is a pure
// value carrying enough detail to describe and exactly invert it.
package move

import (
	"fmt"

	"github.com/nathoo/decorum/engine/board"
)

// Action is a move kind.
type Action uint8

const (
	Paint Action = iota + 1
	Swap
	Remove
	Add
)

// Actions lists every action in canonical order.
var Actions = []Action{Paint, Swap, Remove, Add}

var actionNames = map[Action]string{
	Paint:  "paint",
	Swap:   "swap",
	Remove: "remove",
	Add:    "add",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAction returns the action with the given name.
func ParseAction(s string) (Action, error) {
	for a, n := range actionNames {
		if n == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown move action %q", s)
}

// Move is one action on one room. Fields used per action:
//
//	paint:  Room, OldColor, NewColor
//	swap:   Room, Type, OldStyle, NewStyle
//	remove: Room, Type, OldStyle
//	add:    Room, Type, NewStyle
//
// Move is comparable; == is exact move identity.
type Move struct {
	Action   Action           `json:"action"`
	Room     string           `json:"room"`
	Type     board.ObjectType `json:"obj_type,omitempty"`
	OldStyle board.Style      `json:"old_style,omitempty"`
	NewStyle board.Style      `json:"new_style,omitempty"`
	OldColor board.Color      `json:"old_color,omitempty"`
	NewColor board.Color      `json:"new_color,omitempty"`
}

// Inverse returns the move that exactly undoes m.
func (m Move) Inverse() Move {
	switch m.Action {
	case Paint:
		return Move{Action: Paint, Room: m.Room, OldColor: m.NewColor, NewColor: m.OldColor}
	case Swap:
		return Move{Action: Swap, Room: m.Room, Type: m.Type, OldStyle: m.NewStyle, NewStyle: m.OldStyle}
	case Remove:
		return Move{Action: Add, Room: m.Room, Type: m.Type, NewStyle: m.OldStyle}
	case Add:
		return Move{Action: Remove, Room: m.Room, Type: m.Type, OldStyle: m.NewStyle}
	}
	panic(fmt.Sprintf("move: unknown action %d", uint8(m.Action)))
}

// Describe returns a one-line human description of m.
func (m Move) Describe() string {
	switch m.Action {
	case Paint:
		return fmt.Sprintf("Paint %s: %s -> %s", m.Room, m.OldColor, m.NewColor)
	case Swap:
		return fmt.Sprintf("Swap %s -> %s in %s", m.oldToken(), m.newToken(), m.Room)
	case Remove:
		return fmt.Sprintf("Remove %s from %s", m.oldToken(), m.Room)
	case Add:
		return fmt.Sprintf("Add %s to %s", m.newToken(), m.Room)
	}
	return fmt.Sprintf("%+v", m)
}

func (m Move) String() string {
	return m.Describe()
}

func (m Move) oldToken() board.Token { return board.Token{Type: m.Type, Style: m.OldStyle} }
func (m Move) newToken() board.Token { return board.Token{Type: m.Type, Style: m.NewStyle} }

// Apply performs m on b in place through the board primitives. A move whose
// precondition does not hold on b is a caller defect and panics.
func Apply(b *board.Board, m Move) {
	ok := true
	switch m.Action {
	case Paint:
		b.Paint(m.Room, m.NewColor)
	case Swap:
		_, ok = b.Swap(m.Room, m.newToken())
	case Remove:
		_, ok = b.Remove(m.Room, m.Type)
	case Add:
		ok = b.Add(m.Room, m.newToken())
	default:
		panic(fmt.Sprintf("move: unknown action %d", uint8(m.Action)))
	}
	if !ok {
		panic(fmt.Sprintf("move: %s is not legal on this board", m.Describe()))
	}
}

// Applied returns a copy of b with m applied, leaving b untouched.
func Applied(b *board.Board, m Move) *board.Board {
	next := b.Clone()
	Apply(next, m)
	return next
}

// Replay applies moves in order to a copy of b.
func Replay(b *board.Board, moves []Move) *board.Board {
	next := b.Clone()
	for _, m := range moves {
		Apply(next, m)
	}
	return next
}

// Legal enumerates every move possible on b among the allowed actions, room
// by room in layout order. A nil allowed set permits every action.
func Legal(b *board.Board, allowed map[Action]bool) []Move {
	ok := func(a Action) bool { return allowed == nil || allowed[a] }

	var out []Move
	for _, r := range b.Rooms() {
		if ok(Paint) {
			for _, c := range board.Colors {
				if c != r.Wall {
					out = append(out, Move{Action: Paint, Room: r.Name, OldColor: r.Wall, NewColor: c})
				}
			}
		}
		if ok(Swap) {
			for _, t := range board.ObjectTypes {
				tok, has := r.Object(t)
				if !has {
					continue
				}
				for _, s := range board.Styles {
					if s != tok.Style {
						out = append(out, Move{Action: Swap, Room: r.Name, Type: t, OldStyle: tok.Style, NewStyle: s})
					}
				}
			}
		}
		if ok(Remove) {
			for _, t := range board.ObjectTypes {
				if tok, has := r.Object(t); has {
					out = append(out, Move{Action: Remove, Room: r.Name, Type: t, OldStyle: tok.Style})
				}
			}
		}
		if ok(Add) {
			for _, t := range board.ObjectTypes {
				if r.Has(t) {
					continue
				}
				for _, s := range board.Styles {
					out = append(out, Move{Action: Add, Room: r.Name, Type: t, NewStyle: s})
				}
			}
		}
	}
	return out
}
