package move

import (
	"testing"

	"github.com/nathoo/decorum/engine/board"
)

func testBoard() *board.Board {
	b := board.New(board.TwoPlayer)
	b.Paint("Bathroom", board.Green)
	b.Add("Bathroom", board.Token{Type: board.Lamp, Style: board.Antique})
	b.Add("Kitchen", board.Token{Type: board.Curio, Style: board.Unusual})
	b.Add("Kitchen", board.Token{Type: board.WallHanging, Style: board.Modern})
	return b
}

func TestInverse_RestoresFingerprint(t *testing.T) {
	b := testBoard()
	want := b.Fingerprint()
	seen := map[Action]bool{}

	for _, m := range Legal(b, nil) {
		seen[m.Action] = true
		after := Applied(b, m)
		if after.Fingerprint() == want {
			t.Errorf("%s did not change the board", m.Describe())
		}
		if back := Applied(after, m.Inverse()); back.Fingerprint() != want {
			t.Errorf("%s then inverse did not restore the board", m.Describe())
		}
		if m.Inverse().Inverse() != m {
			t.Errorf("%s: inverse is not an involution", m.Describe())
		}
	}
	for _, a := range Actions {
		if !seen[a] {
			t.Errorf("no %s moves enumerated", a)
		}
	}
	if b.Fingerprint() != want {
		t.Error("Applied must not mutate its input")
	}
}

func TestInverse_Kinds(t *testing.T) {
	tests := []struct {
		name string
		m    Move
		want Move
	}{
		{
			"paint",
			Move{Action: Paint, Room: "Kitchen", OldColor: board.Red, NewColor: board.Blue},
			Move{Action: Paint, Room: "Kitchen", OldColor: board.Blue, NewColor: board.Red},
		},
		{
			"swap",
			Move{Action: Swap, Room: "Bedroom", Type: board.Lamp, OldStyle: board.Modern, NewStyle: board.Retro},
			Move{Action: Swap, Room: "Bedroom", Type: board.Lamp, OldStyle: board.Retro, NewStyle: board.Modern},
		},
		{
			"remove",
			Move{Action: Remove, Room: "Bedroom", Type: board.Curio, OldStyle: board.Antique},
			Move{Action: Add, Room: "Bedroom", Type: board.Curio, NewStyle: board.Antique},
		},
		{
			"add",
			Move{Action: Add, Room: "Bedroom", Type: board.Curio, NewStyle: board.Antique},
			Move{Action: Remove, Room: "Bedroom", Type: board.Curio, OldStyle: board.Antique},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Inverse(); got != tt.want {
				t.Errorf("Inverse = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{Action: Paint, Room: "Kitchen", OldColor: board.Red, NewColor: board.Blue}, "Paint Kitchen: Red -> Blue"},
		{Move{Action: Swap, Room: "Bedroom", Type: board.Lamp, OldStyle: board.Modern, NewStyle: board.Retro}, "Swap Modern Blue Lamp -> Retro Red Lamp in Bedroom"},
		{Move{Action: Remove, Room: "Bathroom", Type: board.Curio, OldStyle: board.Antique}, "Remove Antique Blue Curio from Bathroom"},
		{Move{Action: Add, Room: "Bathroom", Type: board.WallHanging, NewStyle: board.Unusual}, "Add Unusual Yellow Wall Hanging to Bathroom"},
	}
	for _, tt := range tests {
		if got := tt.m.Describe(); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}

func TestLegal_Counts(t *testing.T) {
	b := testBoard()
	// 4 rooms x 3 other colors.
	// 3 objects x 3 other styles.
	// 3 objects removable.
	// 9 empty slots x 4 styles.
	tests := []struct {
		allowed map[Action]bool
		want    int
	}{
		{map[Action]bool{Paint: true}, 12},
		{map[Action]bool{Swap: true}, 9},
		{map[Action]bool{Remove: true}, 3},
		{map[Action]bool{Add: true}, 36},
		{nil, 60},
		{map[Action]bool{}, 0},
	}
	for _, tt := range tests {
		if got := len(Legal(b, tt.allowed)); got != tt.want {
			t.Errorf("Legal(%v) = %d moves, want %d", tt.allowed, got, tt.want)
		}
	}
}

func TestApply_IllegalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a remove from an empty slot")
		}
	}()
	Apply(testBoard(), Move{Action: Remove, Room: "Bedroom", Type: board.Lamp, OldStyle: board.Modern})
}

func TestReplay(t *testing.T) {
	b := testBoard()
	moves := []Move{
		{Action: Paint, Room: "Bedroom", OldColor: board.Red, NewColor: board.Yellow},
		{Action: Add, Room: "Bedroom", Type: board.Lamp, NewStyle: board.Retro},
		{Action: Swap, Room: "Bedroom", Type: board.Lamp, OldStyle: board.Retro, NewStyle: board.Modern},
	}
	end := Replay(b, moves)

	r, _ := end.Room("Bedroom")
	if r.Wall != board.Yellow {
		t.Errorf("wall = %s, want Yellow", r.Wall)
	}
	if tok, ok := r.Object(board.Lamp); !ok || tok.Style != board.Modern {
		t.Errorf("lamp = %v, %v", tok, ok)
	}

	undo := make([]Move, len(moves))
	for i, m := range moves {
		undo[len(moves)-1-i] = m.Inverse()
	}
	if Replay(end, undo).Fingerprint() != b.Fingerprint() {
		t.Error("replaying inverses in reverse order should restore the start")
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAction("teleport"); err == nil {
		t.Error("expected error for unknown action")
	}
}
