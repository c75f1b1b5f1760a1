package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/move"
	"github.com/nathoo/decorum/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// maxItems is the number of object slots in a house.
const maxItems = board.NumRooms * board.NumObjectTypes

// validate checks the compiled presets for ranges and consistency. It returns
// a *ValidationError when there are errors or warnings; callers distinguish
// the two by len(Errors).
func validate(p *types.Presets) error {
	ve := &ValidationError{}

	if len(p.Order) == 0 {
		ve.errorf("no difficulties defined")
	}
	if _, ok := p.Difficulties[p.Default]; !ok {
		ve.errorf("default difficulty %q is not defined", p.Default)
	}
	for _, name := range p.Order {
		d, ok := p.Difficulties[name]
		if !ok {
			ve.errorf("difficulty %q is listed but not defined", name)
			continue
		}
		validateDifficulty(d, ve)
	}

	for name, v := range scoreFields(&p.Scoring).floats {
		if *v <= 0 {
			ve.warnf("scoring %s = %g; constraints of that kind will never be preferred", name, *v)
		}
	}
	for name, v := range allocationFields(&p.Allocation).floats {
		if *v < 0 {
			ve.errorf("allocation %s must not be negative, got %g", name, *v)
		}
	}
	if p.Allocation.Floor <= 0 {
		ve.errorf("allocation floor must be positive, got %g", p.Allocation.Floor)
	}

	sort.Strings(ve.Errors)
	sort.Strings(ve.Warnings)
	if len(ve.Errors) > 0 || len(ve.Warnings) > 0 {
		return ve
	}
	return nil
}

func validateDifficulty(d types.Difficulty, ve *ValidationError) {
	name := d.Name

	if d.Colors < 2 || d.Colors > len(board.Colors) {
		ve.errorf("difficulty %q: colors must be between 2 and %d, got %d", name, len(board.Colors), d.Colors)
	}
	if d.Styles < 1 || d.Styles > len(board.Styles) {
		ve.errorf("difficulty %q: styles must be between 1 and %d, got %d", name, len(board.Styles), d.Styles)
	}
	if d.ItemsMin < 0 || d.ItemsMax < d.ItemsMin {
		ve.errorf("difficulty %q: item range %d-%d is invalid", name, d.ItemsMin, d.ItemsMax)
	}
	if d.ItemsMax > maxItems {
		ve.errorf("difficulty %q: items_max %d exceeds the %d slots in a house", name, d.ItemsMax, maxItems)
	}
	for field, v := range map[string]float64{
		"pattern_prob":    d.PatternProb,
		"theme_prob":      d.ThemeProb,
		"theme_adherence": d.ThemeAdherence,
	} {
		if v < 0 || v > 1 {
			ve.errorf("difficulty %q: %s must be between 0 and 1, got %g", name, field, v)
		}
	}
	if d.RulesPerPlayer < 1 {
		ve.errorf("difficulty %q: rules_per_player must be at least 1", name)
	}
	if d.PerturbMin < 0 || d.PerturbMax < d.PerturbMin {
		ve.errorf("difficulty %q: perturb range %d-%d is invalid", name, d.PerturbMin, d.PerturbMax)
	}
	if d.MinViolations > d.RulesPerPlayer {
		ve.errorf("difficulty %q: min_violations %d exceeds rules_per_player %d", name, d.MinViolations, d.RulesPerPlayer)
	}
	if d.MinViolations < 0 || d.MaxAttempts < 0 || d.MaxExtraMoves < 0 {
		ve.errorf("difficulty %q: search budgets must not be negative", name)
	}

	drawable := false
	allowed := map[move.Action]bool{}
	for _, m := range d.AllowedMoves {
		a, err := move.ParseAction(m)
		if err != nil {
			ve.errorf("difficulty %q: allowed_moves: %v", name, err)
			continue
		}
		allowed[a] = true
	}
	for m, w := range d.MoveWeights {
		a, err := move.ParseAction(m)
		if err != nil {
			ve.errorf("difficulty %q: move_weights: %v", name, err)
			continue
		}
		if w < 0 {
			ve.errorf("difficulty %q: move weight %s must not be negative", name, m)
		}
		if w > 0 && (len(allowed) == 0 || allowed[a]) {
			drawable = true
		}
	}
	if len(d.MoveWeights) > 0 && !drawable {
		ve.warnf("difficulty %q: no allowed move has positive weight; only repair moves will perturb the board", name)
	}
}
