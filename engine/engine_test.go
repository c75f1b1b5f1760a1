package engine

import (
	"errors"
	"testing"

	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/move"
	"github.com/nathoo/decorum/types"
)

func mustGenerate(t *testing.T, e *Engine, req Request) *Scenario {
	t.Helper()
	s, err := e.Generate(req)
	if err != nil {
		t.Fatalf("Generate(%+v): %v", req, err)
	}
	return s
}

func TestGenerate_InvalidPlayers(t *testing.T) {
	e := New(nil)
	for _, n := range []int{-1, 0, 1, 5, 12} {
		_, err := e.Generate(Request{Players: n, Difficulty: "easy", Seed: 1, HasSeed: true})
		if !errors.Is(err, ErrInvalidPlayers) {
			t.Errorf("players=%d: expected ErrInvalidPlayers, got %v", n, err)
		}
	}
}

func TestGenerate_UnknownDifficulty(t *testing.T) {
	_, err := New(nil).Generate(Request{Players: 2, Difficulty: "nightmare", Seed: 1, HasSeed: true})
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestDifficulty_Resolution(t *testing.T) {
	e := New(nil)
	tests := []struct {
		in   string
		want string
	}{
		{"", "medium"},
		{"easy", "easy"},
		{"HARD", "hard"},
		{"med", "medium"},
	}
	for _, tt := range tests {
		d, err := e.Difficulty(tt.in)
		if err != nil {
			t.Errorf("Difficulty(%q): %v", tt.in, err)
			continue
		}
		if d.Name != tt.want {
			t.Errorf("Difficulty(%q) = %s, want %s", tt.in, d.Name, tt.want)
		}
	}
}

// TestGenerate_EasyTwoPlayer is the end-to-end scenario: 2 players on easy.
func TestGenerate_EasyTwoPlayer(t *testing.T) {
	e := New(nil)
	easy := e.Presets.Difficulties["easy"]

	for seed := int64(1); seed <= 10; seed++ {
		s := mustGenerate(t, e, Request{Players: 2, Difficulty: "easy", Seed: seed, HasSeed: true})

		walls := map[board.Color]bool{}
		for _, r := range s.Target.Rooms() {
			walls[r.Wall] = true
		}
		if len(walls) < 2 {
			t.Errorf("seed %d: target has %d wall colors", seed, len(walls))
		}
		for _, ot := range board.ObjectTypes {
			if s.Target.CountType(ot) == 0 {
				t.Errorf("seed %d: target has no %s", seed, ot)
			}
		}

		seen := map[constraint.Key]bool{}
		for p, cs := range s.Assignment {
			if len(cs) != easy.RulesPerPlayer {
				t.Errorf("seed %d: player %d has %d rules, want %d", seed, p, len(cs), easy.RulesPerPlayer)
			}
			for _, c := range cs {
				if seen[c.Key()] {
					t.Errorf("seed %d: %s dealt twice", seed, c)
				}
				seen[c.Key()] = true
			}
		}

		v := s.Verify()
		if len(v.TargetFailures) != 0 {
			t.Errorf("seed %d: constraints false on the target: %v", seed, v.TargetFailures)
		}
		if !s.Complete || !v.AllViolated {
			t.Errorf("seed %d: start violations %v do not reach the minimum", seed, v.Violations)
		}
		if s.Config.Steps < easy.PerturbMin || s.Config.Steps > easy.PerturbMax {
			t.Errorf("seed %d: %d steps outside the easy range", seed, s.Config.Steps)
		}
		if s.Walked > s.Config.Steps {
			t.Errorf("seed %d: walked %d moves with a budget of %d", seed, s.Walked, s.Config.Steps)
		}
		if len(s.Moves) > easy.PerturbMax+s.Config.MaxExtraMoves {
			t.Errorf("seed %d: %d moves exceeds the ceiling", seed, len(s.Moves))
		}
		if move.Replay(s.Target, s.Moves).Fingerprint() != s.Start.Fingerprint() {
			t.Errorf("seed %d: move log does not lead from target to start", seed)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	e := New(nil)
	for _, req := range []Request{
		{Players: 2, Difficulty: "easy", Seed: 42, HasSeed: true},
		{Players: 3, Difficulty: "medium", Seed: 7, HasSeed: true},
		{Players: 4, Difficulty: "hard", Seed: 123456789, HasSeed: true},
	} {
		a := mustGenerate(t, e, req)
		b := mustGenerate(t, e, req)

		if a.Target.Fingerprint() != b.Target.Fingerprint() {
			t.Errorf("%+v: target boards differ", req)
		}
		if a.Start.Fingerprint() != b.Start.Fingerprint() {
			t.Errorf("%+v: start boards differ", req)
		}
		if a.ID != b.ID {
			t.Errorf("%+v: IDs differ", req)
		}
		if len(a.Moves) != len(b.Moves) {
			t.Fatalf("%+v: move logs differ in length", req)
		}
		for i := range a.Moves {
			if a.Moves[i] != b.Moves[i] {
				t.Errorf("%+v: move %d differs", req, i)
			}
		}
		for p := range a.Assignment {
			if len(a.Assignment[p]) != len(b.Assignment[p]) {
				t.Fatalf("%+v: player %d rule counts differ", req, p)
			}
			for i := range a.Assignment[p] {
				if a.Assignment[p][i] != b.Assignment[p][i] {
					t.Errorf("%+v: player %d rule %d differs", req, p, i)
				}
			}
		}
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	e := New(nil)
	a := mustGenerate(t, e, Request{Players: 3, Difficulty: "medium", Seed: 1, HasSeed: true})
	b := mustGenerate(t, e, Request{Players: 3, Difficulty: "medium", Seed: 2, HasSeed: true})
	if a.ID == b.ID {
		t.Error("different seeds should give different scenario IDs")
	}
}

func TestGenerate_UnseededIsResolved(t *testing.T) {
	s := mustGenerate(t, New(nil), Request{Players: 2})
	if s.Seed == 0 {
		t.Error("an unseeded request should report the seed it picked")
	}
	if s.Difficulty != "medium" {
		t.Errorf("default difficulty = %s, want medium", s.Difficulty)
	}

	again := mustGenerate(t, New(nil), Request{Players: 2}.WithSeed(s.Seed))
	if again.ID != s.ID {
		t.Error("the reported seed should reproduce the scenario")
	}
}

func TestGenerate_ZeroSeedIsReproducible(t *testing.T) {
	e := New(nil)
	req := Request{Players: 2, Difficulty: "easy"}.WithSeed(0)
	a := mustGenerate(t, e, req)
	b := mustGenerate(t, e, req)
	if a.Seed != 0 || b.Seed != 0 {
		t.Fatalf("seeds = %d, %d, want 0", a.Seed, b.Seed)
	}
	if a.Target.Fingerprint() != b.Target.Fingerprint() || a.Start.Fingerprint() != b.Start.Fingerprint() {
		t.Error("seed 0 should reproduce the same boards")
	}
	if a.ID != b.ID {
		t.Error("seed 0 should reproduce the same scenario ID")
	}
}

func TestRequest_SeedHelpers(t *testing.T) {
	req := Request{Players: 3}.WithSeed(0)
	if !req.HasSeed || req.Seed != 0 {
		t.Errorf("WithSeed(0) = %+v, want a pinned zero seed", req)
	}
	req = req.WithSeed(8).Unseeded()
	if req.HasSeed || req.Seed != 0 || req.Players != 3 {
		t.Errorf("Unseeded = %+v", req)
	}
}

func TestGenerate_RoommatesVariant(t *testing.T) {
	s := mustGenerate(t, New(nil), Request{Players: 4, Difficulty: "hard", Seed: 3, HasSeed: true})
	if s.Target.Variant() != board.Roommates {
		t.Errorf("4 players should use the roommates house")
	}
	if s.Assignment.Players() != 4 {
		t.Errorf("assignment has %d players", s.Assignment.Players())
	}
}

func TestSearchConfig(t *testing.T) {
	d := types.Difficulty{
		Name:          "custom",
		MinViolations: 2,
		MoveWeights:   map[string]float64{"paint": 2, "add": 0},
		AllowedMoves:  []string{"paint", "swap"},
	}
	cfg, err := SearchConfig(d, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Steps != 4 || cfg.MinViolations != 2 {
		t.Errorf("steps/min = %d/%d", cfg.Steps, cfg.MinViolations)
	}
	if cfg.MaxAttempts != 30 || cfg.MaxExtraMoves != 10 {
		t.Errorf("unset budgets should keep defaults, got %d/%d", cfg.MaxAttempts, cfg.MaxExtraMoves)
	}
	if cfg.Weights[move.Paint] != 2 || len(cfg.Weights) != 2 {
		t.Errorf("weights = %v", cfg.Weights)
	}
	if !cfg.Allowed[move.Swap] || cfg.Allowed[move.Remove] {
		t.Errorf("allowed = %v", cfg.Allowed)
	}

	d.MoveWeights = map[string]float64{"teleport": 1}
	if _, err := SearchConfig(d, 4); err == nil {
		t.Error("expected error for unknown move action")
	}
}

func TestKindCounts(t *testing.T) {
	s := mustGenerate(t, New(nil), Request{Players: 3, Difficulty: "medium", Seed: 11, HasSeed: true})
	total := 0
	for _, n := range s.KindCounts() {
		total += n
	}
	if total != len(s.Assignment.All()) {
		t.Errorf("kind counts sum to %d, want %d", total, len(s.Assignment.All()))
	}
}
