// Package loader loads Lua preset files into Go structs at startup.
// The Lua VM is discarded after loading; generation never runs Lua.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/decorum/engine"
	"github.com/nathoo/decorum/types"
)

// rawDifficulty holds a tier table before compilation.
type rawDifficulty struct {
	name  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// sortedKeys returns the string keys of tbl in sorted order. Non-string keys
// are reported through bad.
func sortedKeys(tbl *lua.LTable, bad func(lua.LValue)) []string {
	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			keys = append(keys, string(ks))
		} else {
			bad(k)
		}
	})
	sort.Strings(keys)
	return keys
}

// fields binds Lua keys to the Go values they overlay.
type fields struct {
	ints   map[string]*int
	floats map[string]*float64
}

func difficultyFields(d *types.Difficulty) fields {
	return fields{
		ints: map[string]*int{
			"colors":           &d.Colors,
			"styles":           &d.Styles,
			"items_min":        &d.ItemsMin,
			"items_max":        &d.ItemsMax,
			"rules_per_player": &d.RulesPerPlayer,
			"perturb_min":      &d.PerturbMin,
			"perturb_max":      &d.PerturbMax,
			"min_violations":   &d.MinViolations,
			"max_attempts":     &d.MaxAttempts,
			"max_extra_moves":  &d.MaxExtraMoves,
		},
		floats: map[string]*float64{
			"pattern_prob":    &d.PatternProb,
			"theme_prob":      &d.ThemeProb,
			"theme_adherence": &d.ThemeAdherence,
		},
	}
}

func scoreFields(s *types.ScoreTable) fields {
	return fields{floats: map[string]*float64{
		"wall_is":          &s.WallIs,
		"wall_is_not":      &s.WallIsNot,
		"wall_temp":        &s.WallTemp,
		"room_has_type":    &s.RoomHasType,
		"room_no_type":     &s.RoomNoType,
		"room_has_style":   &s.RoomHasStyle,
		"room_no_style":    &s.RoomNoStyle,
		"room_has_color":   &s.RoomHasColor,
		"room_no_color":    &s.RoomNoColor,
		"area_has_type":    &s.AreaHasType,
		"area_no_type":     &s.AreaNoType,
		"area_has_color":   &s.AreaHasColor,
		"area_no_color":    &s.AreaNoColor,
		"area_has_style":   &s.AreaHasStyle,
		"area_no_style":    &s.AreaNoStyle,
		"empty_negative":   &s.EmptyNegative,
		"exact_rooms_few":  &s.ExactRoomsFew,
		"exact_rooms_many": &s.ExactRoomsMany,
		"no_color_house":   &s.NoColorHouse,
		"color_base":       &s.ColorBase,
		"color_span":       &s.ColorSpan,
		"count_base":       &s.CountBase,
		"count_span":       &s.CountSpan,
		"uniform":          &s.Uniform,
		"equal_present":    &s.EqualPresent,
		"equal_absent":     &s.EqualAbsent,
		"type_implies":     &s.TypeImplies,
		"one_style":        &s.OneStyle,
		"temp_tight":       &s.TempTight,
		"temp_loose":       &s.TempLoose,
	}}
}

func allocationFields(w *types.AllocationWeights) fields {
	return fields{floats: map[string]*float64{
		"new_room":      &w.NewRoom,
		"new_kind":      &w.NewKind,
		"polarity":      &w.Polarity,
		"concentration": &w.Concentration,
		"repeat_kind":   &w.RepeatKind,
		"floor":         &w.Floor,
	}}
}

// compiler carries warnings across one compilation.
type compiler struct {
	warnings []string
}

func (c *compiler) warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// overlay copies every recognized key of tbl into f. Keys listed in skip are
// handled by the caller. Unknown keys are warnings; wrong types are errors.
func (c *compiler) overlay(ctx string, tbl *lua.LTable, f fields, skip map[string]bool) error {
	keys := sortedKeys(tbl, func(k lua.LValue) {
		c.warn("%s: ignoring non-string key %s", ctx, k)
	})
	for _, key := range keys {
		if skip[key] {
			continue
		}
		v := tbl.RawGetString(key)
		if p, ok := f.ints[key]; ok {
			n, err := toInt(v)
			if err != nil {
				return fmt.Errorf("%s: field %q %w", ctx, key, err)
			}
			*p = n
			continue
		}
		if p, ok := f.floats[key]; ok {
			n, ok := v.(lua.LNumber)
			if !ok {
				return fmt.Errorf("%s: field %q must be a number, got %s", ctx, key, v.Type())
			}
			*p = float64(n)
			continue
		}
		c.warn("%s: unknown field %q", ctx, key)
	}
	return nil
}

func toInt(v lua.LValue) (int, error) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("must be a number, got %s", v.Type())
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be a whole number, got %g", f)
	}
	return int(f), nil
}

// rangeField reads a {lo, hi} pair into lo and hi.
func rangeField(ctx, key string, tbl *lua.LTable, lo, hi *int) error {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	t, ok := v.(*lua.LTable)
	if !ok || t.Len() != 2 {
		return fmt.Errorf("%s: field %q must be a {min, max} pair", ctx, key)
	}
	a, err := toInt(t.RawGetInt(1))
	if err != nil {
		return fmt.Errorf("%s: field %q min %w", ctx, key, err)
	}
	b, err := toInt(t.RawGetInt(2))
	if err != nil {
		return fmt.Errorf("%s: field %q max %w", ctx, key, err)
	}
	*lo, *hi = a, b
	return nil
}

// Keys compileDifficulty handles itself rather than through overlay.
var difficultySpecial = map[string]bool{
	"base":          true,
	"items":         true,
	"perturb":       true,
	"move_weights":  true,
	"allowed_moves": true,
}

// compileDifficulty overlays raw onto d.
func (c *compiler) compileDifficulty(raw rawDifficulty, d *types.Difficulty) error {
	ctx := fmt.Sprintf("difficulty %q", raw.name)
	tbl := raw.table

	if err := c.overlay(ctx, tbl, difficultyFields(d), difficultySpecial); err != nil {
		return err
	}
	if err := rangeField(ctx, "items", tbl, &d.ItemsMin, &d.ItemsMax); err != nil {
		return err
	}
	if err := rangeField(ctx, "perturb", tbl, &d.PerturbMin, &d.PerturbMax); err != nil {
		return err
	}

	if w := getTable(tbl, "move_weights"); w != nil {
		if d.MoveWeights == nil {
			d.MoveWeights = map[string]float64{}
		}
		for _, key := range sortedKeys(w, func(k lua.LValue) {
			c.warn("%s: ignoring non-string move weight key %s", ctx, k)
		}) {
			n, ok := w.RawGetString(key).(lua.LNumber)
			if !ok {
				return fmt.Errorf("%s: move weight %q must be a number", ctx, key)
			}
			d.MoveWeights[key] = float64(n)
		}
	}

	if v := tbl.RawGetString("allowed_moves"); v != lua.LNil {
		t, ok := v.(*lua.LTable)
		if !ok {
			return fmt.Errorf("%s: allowed_moves must be a list", ctx)
		}
		var moves []string
		for i := 1; i <= t.Len(); i++ {
			s, ok := t.RawGetInt(i).(lua.LString)
			if !ok {
				return fmt.Errorf("%s: allowed_moves[%d] must be a string", ctx, i)
			}
			moves = append(moves, string(s))
		}
		d.AllowedMoves = moves
	}
	return nil
}

// compile overlays all collected Lua data onto the built-in presets.
func compile(coll *collector) (*types.Presets, []string, error) {
	p := engine.DefaultPresets()
	c := &compiler{}

	seen := map[string]bool{}
	for _, raw := range coll.difficulties {
		if raw.name == "" {
			return nil, nil, fmt.Errorf("difficulty with empty name")
		}
		if seen[raw.name] {
			c.warn("difficulty %q defined more than once; later fields win", raw.name)
		}
		seen[raw.name] = true

		d, exists := p.Difficulties[raw.name]
		if base := getString(raw.table, "base"); base != "" {
			bd, ok := p.Difficulties[base]
			if !ok {
				return nil, nil, fmt.Errorf("difficulty %q: unknown base %q", raw.name, base)
			}
			d = bd
		} else if !exists {
			d = p.Difficulties[p.Default]
		}
		d.Name = raw.name
		d.MoveWeights = cloneWeights(d.MoveWeights)
		d.AllowedMoves = append([]string(nil), d.AllowedMoves...)

		if err := c.compileDifficulty(raw, &d); err != nil {
			return nil, nil, err
		}
		if !exists {
			p.Order = append(p.Order, raw.name)
		}
		p.Difficulties[raw.name] = d
	}

	for _, tbl := range coll.scoring {
		if err := c.overlay("scoring", tbl, scoreFields(&p.Scoring), nil); err != nil {
			return nil, nil, err
		}
	}
	for _, tbl := range coll.allocation {
		if err := c.overlay("allocation", tbl, allocationFields(&p.Allocation), nil); err != nil {
			return nil, nil, err
		}
	}

	if coll.defaultTier != "" {
		p.Default = coll.defaultTier
	}
	return p, c.warnings, nil
}

func cloneWeights(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sortedLuaFiles returns presets.lua first, then the rest alphabetically.
func sortedLuaFiles(files []string) []string {
	var main string
	var others []string
	for _, f := range files {
		if f == "presets.lua" {
			main = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if main != "" {
		return append([]string{main}, others...)
	}
	return others
}
