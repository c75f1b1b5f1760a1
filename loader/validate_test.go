package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/types"
)

func TestValidate_DefaultPresets(t *testing.T) {
	if err := validate(engine.DefaultPresets()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func mutate(fn func(p *types.Presets)) *ValidationError {
	p := engine.DefaultPresets()
	fn(p)
	err := validate(p)
	if err == nil {
		return nil
	}
	return err.(*ValidationError)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p *types.Presets)
		want string
	}{
		{"missing default", func(p *types.Presets) { p.Default = "nope" }, `default difficulty "nope"`},
		{"listed undefined", func(p *types.Presets) { p.Order = append(p.Order, "ghost") }, `"ghost" is listed but not defined`},
		{"no tiers", func(p *types.Presets) { p.Order = nil }, "no difficulties"},
		{"one color", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.Colors = 1 }) }, "colors must be between"},
		{"no styles", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.Styles = 0 }) }, "styles must be between"},
		{"too many items", func(p *types.Presets) { setTier(p, "hard", func(d *types.Difficulty) { d.ItemsMax = 13 }) }, "exceeds the 12 slots"},
		{"inverted perturb", func(p *types.Presets) { setTier(p, "medium", func(d *types.Difficulty) { d.PerturbMin = 9 }) }, "perturb range 9-8"},
		{"no rules", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.RulesPerPlayer = 0 }) }, "rules_per_player must be at least 1"},
		{"min over rules", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.MinViolations = 4 }) }, "min_violations 4 exceeds"},
		{"negative budget", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.MaxAttempts = -1 }) }, "must not be negative"},
		{"theme out of range", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.ThemeAdherence = -0.1 }) }, "theme_adherence"},
		{"bad allowed", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.AllowedMoves = []string{"fly"} }) }, `unknown move action "fly"`},
		{"negative weight", func(p *types.Presets) { setTier(p, "easy", func(d *types.Difficulty) { d.MoveWeights["swap"] = -1 }) }, "move weight swap"},
		{"zero floor", func(p *types.Presets) { p.Allocation.Floor = 0 }, "floor must be positive"},
		{"negative allocation", func(p *types.Presets) { p.Allocation.NewKind = -2 }, "allocation new_kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := mutate(tt.fn)
			if ve == nil {
				t.Fatal("expected validation error")
			}
			assertContains(t, ve.Errors, tt.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	ve := mutate(func(p *types.Presets) {
		p.Scoring.OneStyle = 0
		setTier(p, "easy", func(d *types.Difficulty) {
			d.AllowedMoves = []string{"add"}
			d.MoveWeights["add"] = 0
		})
	})
	if ve == nil {
		t.Fatal("expected warnings")
	}
	if len(ve.Errors) != 0 {
		t.Fatalf("expected warnings only, got errors %v", ve.Errors)
	}
	assertContains(t, ve.Warnings, "scoring one_style")
	assertContains(t, ve.Warnings, "only repair moves")
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	want := "validation failed with 2 error(s):\n  a\n  b"
	if ve.Error() != want {
		t.Errorf("got %q, want %q", ve.Error(), want)
	}
}

func setTier(p *types.Presets, name string, fn func(d *types.Difficulty)) {
	d := p.Difficulties[name]
	fn(&d)
	p.Difficulties[name] = d
}

func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
