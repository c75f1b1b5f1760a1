package engine

import (
	"github.com/nathoo/decorum/engine/assign"
	"github.com/nathoo/decorum/engine/candidates"
	"github.com/nathoo/decorum/types"
)

// DefaultPresets returns the built-in easy, medium and hard tiers with the
// stock score table and allocation weights. Lua preset files overlay these.
func DefaultPresets() *types.Presets {
	tier := func(name string, colors, styles, lo, hi int, pattern float64,
		rules, pmin, pmax int, weights map[string]float64) types.Difficulty {
		return types.Difficulty{
			Name:           name,
			Colors:         colors,
			Styles:         styles,
			ItemsMin:       lo,
			ItemsMax:       hi,
			PatternProb:    pattern,
			ThemeProb:      0.4,
			ThemeAdherence: 0.7,
			RulesPerPlayer: rules,
			PerturbMin:     pmin,
			PerturbMax:     pmax,
			MinViolations:  1,
			MaxAttempts:    30,
			MaxExtraMoves:  10,
			MoveWeights:    weights,
		}
	}

	easy := tier("easy", 3, 3, 5, 7, 0.35, 3, 3, 5,
		map[string]float64{"paint": 1.0, "swap": 1.5, "remove": 0.5, "add": 0.3})
	medium := tier("medium", 3, 4, 6, 9, 0.30, 4, 5, 8,
		map[string]float64{"paint": 1.0, "swap": 1.5, "remove": 0.8, "add": 0.3})
	hard := tier("hard", 4, 4, 7, 10, 0.25, 4, 7, 10,
		map[string]float64{"paint": 1.0, "swap": 1.2, "remove": 1.0, "add": 0.5})

	return &types.Presets{
		Difficulties: map[string]types.Difficulty{
			"easy":   easy,
			"medium": medium,
			"hard":   hard,
		},
		Order:      []string{"easy", "medium", "hard"},
		Default:    "medium",
		Scoring:    candidates.DefaultScores(),
		Allocation: assign.DefaultWeights(),
	}
}
