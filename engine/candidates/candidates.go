// Package candidates enumerates every constraint instance that holds on a
// board and gives each a heuristic interestingness score.
package candidates

import (
	"fmt"

	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/types"
)

// DefaultScores returns the stock score table.
func DefaultScores() types.ScoreTable {
	return types.ScoreTable{
		WallIs:         6.0,
		WallIsNot:      3.0,
		WallTemp:       4.0,
		RoomHasType:    5.0,
		RoomNoType:     4.0,
		RoomHasStyle:   5.5,
		RoomNoStyle:    4.5,
		RoomHasColor:   5.0,
		RoomNoColor:    4.0,
		AreaHasType:    6.0,
		AreaNoType:     5.5,
		AreaHasColor:   5.5,
		AreaNoColor:    5.0,
		AreaHasStyle:   5.5,
		AreaNoStyle:    5.0,
		EmptyNegative:  2.0,
		ExactRoomsFew:  7.0,
		ExactRoomsMany: 5.5,
		NoColorHouse:   6.0,
		ColorBase:      4.0,
		ColorSpan:      2.5,
		CountBase:      4.0,
		CountSpan:      2.0,
		Uniform:        7.5,
		EqualPresent:   7.5,
		EqualAbsent:    4.0,
		TypeImplies:    8.0,
		OneStyle:       6.5,
		TempTight:      5.0,
		TempLoose:      4.0,
	}
}

// generator accumulates candidates for one board.
type generator struct {
	b     *board.Board
	s     types.ScoreTable
	cands []constraint.Constraint
}

// add records a candidate. A candidate that does not hold on the source
// board is a generation defect and panics.
func (g *generator) add(k constraint.Kind, p constraint.Params, score float64) {
	c := constraint.Constraint{Kind: k, Params: p, Score: score}
	if !c.Evaluate(g.b) {
		panic(fmt.Sprintf("candidates: generated %s is false on its source board", c))
	}
	g.cands = append(g.cands, c)
}

// Generate returns every true constraint instance on b, in a fixed
// enumeration order: rooms, areas, counts, uniformity, relational,
// temperature.
func Generate(b *board.Board, s types.ScoreTable) []constraint.Constraint {
	g := &generator{b: b, s: s}
	g.rooms()
	g.areas()
	g.counts()
	g.uniformity()
	g.relational()
	g.temperature()
	return g.cands
}

// negScore picks the score of a negative container constraint, lowered when
// the container holds nothing at all.
func (g *generator) negScore(normal float64, objects int) float64 {
	if objects == 0 {
		return g.s.EmptyNegative
	}
	return normal
}

func (g *generator) rooms() {
	for _, r := range g.b.Rooms() {
		for _, c := range board.Colors {
			p := constraint.Params{Room: r.Name, Color: c}
			if r.Wall == c {
				g.add(constraint.RoomWallColorIs, p, g.s.WallIs)
			} else {
				g.add(constraint.RoomWallColorIsNot, p, g.s.WallIsNot)
			}
		}

		if r.Wall.Warm() {
			g.add(constraint.RoomWallWarm, constraint.Params{Room: r.Name}, g.s.WallTemp)
		} else {
			g.add(constraint.RoomWallCool, constraint.Params{Room: r.Name}, g.s.WallTemp)
		}

		for _, t := range board.ObjectTypes {
			p := constraint.Params{Room: r.Name, Type: t}
			if r.Has(t) {
				g.add(constraint.RoomHasType, p, g.s.RoomHasType)
			} else {
				g.add(constraint.RoomNoType, p, g.s.RoomNoType)
			}
		}

		n := r.ObjectCount()
		for _, st := range board.Styles {
			p := constraint.Params{Room: r.Name, Style: st}
			if r.HasStyle(st) {
				g.add(constraint.RoomHasStyle, p, g.s.RoomHasStyle)
			} else {
				g.add(constraint.RoomNoStyle, p, g.negScore(g.s.RoomNoStyle, n))
			}
		}

		for _, c := range board.Colors {
			p := constraint.Params{Room: r.Name, Color: c}
			if r.HasObjectColor(c) {
				g.add(constraint.RoomHasColor, p, g.s.RoomHasColor)
			} else {
				g.add(constraint.RoomNoColor, p, g.negScore(g.s.RoomNoColor, n))
			}
		}
	}
}

func (g *generator) areas() {
	for _, area := range board.Areas {
		rooms := g.b.AreaRooms(area)
		n := g.b.AreaObjectCount(area)

		for _, t := range board.ObjectTypes {
			p := constraint.Params{Area: area, Type: t}
			if anyRoom(rooms, func(r *board.Room) bool { return r.Has(t) }) {
				g.add(constraint.AreaHasType, p, g.s.AreaHasType)
			} else {
				g.add(constraint.AreaNoType, p, g.s.AreaNoType)
			}
		}

		for _, c := range board.Colors {
			p := constraint.Params{Area: area, Color: c}
			if anyRoom(rooms, func(r *board.Room) bool { return r.HasObjectColor(c) }) {
				g.add(constraint.AreaHasColor, p, g.s.AreaHasColor)
			} else {
				g.add(constraint.AreaNoColor, p, g.negScore(g.s.AreaNoColor, n))
			}
		}

		for _, st := range board.Styles {
			p := constraint.Params{Area: area, Style: st}
			if anyRoom(rooms, func(r *board.Room) bool { return r.HasStyle(st) }) {
				g.add(constraint.AreaHasStyle, p, g.s.AreaHasStyle)
			} else {
				g.add(constraint.AreaNoStyle, p, g.negScore(g.s.AreaNoStyle, n))
			}
		}
	}
}

func anyRoom(rooms []*board.Room, pred func(*board.Room) bool) bool {
	for _, r := range rooms {
		if pred(r) {
			return true
		}
	}
	return false
}

// counts emits the global count kinds. Thresholds are only the tightest one
// or two values at or below the true count, scored higher as they approach it.
func (g *generator) counts() {
	for _, c := range board.Colors {
		walls := g.b.CountWallColor(c)
		if walls >= 1 && walls <= 3 {
			sc := g.s.ExactRoomsMany
			if walls <= 2 {
				sc = g.s.ExactRoomsFew
			}
			g.add(constraint.ExactlyNRoomsColor, constraint.Params{Color: c, N: walls}, sc)
		}

		objs := g.b.CountObjectColor(c)
		if objs == 0 {
			g.add(constraint.NoColorInHouse, constraint.Params{Color: c}, g.s.NoColorHouse)
			continue
		}
		for k := max(1, objs-1); k <= objs; k++ {
			sc := g.s.ColorBase + g.s.ColorSpan*float64(k)/float64(objs)
			g.add(constraint.AtLeastNColor, constraint.Params{Color: c, N: k}, sc)
		}
	}

	for _, t := range board.ObjectTypes {
		g.threshold(constraint.AtLeastNType, constraint.Params{Type: t}, g.b.CountType(t))
	}
	for _, st := range board.Styles {
		g.threshold(constraint.AtLeastNStyle, constraint.Params{Style: st}, g.b.CountStyle(st))
	}
}

func (g *generator) threshold(k constraint.Kind, p constraint.Params, count int) {
	if count < 2 {
		return
	}
	for n := max(2, count-1); n <= count; n++ {
		p.N = n
		g.add(k, p, g.s.CountBase+g.s.CountSpan*float64(n)/float64(count))
	}
}

// uniformity emits "all of a type share a color/style" only when at least
// two instances exist and actually agree.
func (g *generator) uniformity() {
	for _, t := range board.ObjectTypes {
		objs := g.b.TypeObjects(t)
		if len(objs) < 2 {
			continue
		}
		sameColor, sameStyle := true, true
		for _, o := range objs[1:] {
			if o.Color() != objs[0].Color() {
				sameColor = false
			}
			if o.Style != objs[0].Style {
				sameStyle = false
			}
		}
		if sameColor {
			g.add(constraint.AllTypeSameColor, constraint.Params{Type: t, Color: objs[0].Color()}, g.s.Uniform)
		}
		if sameStyle {
			g.add(constraint.AllTypeSameStyle, constraint.Params{Type: t, Style: objs[0].Style}, g.s.Uniform)
		}
	}
}

func (g *generator) relational() {
	for i, a := range board.Colors {
		for _, b := range board.Colors[i+1:] {
			na, nb := g.b.CountWallColor(a), g.b.CountWallColor(b)
			if na != nb {
				continue
			}
			sc := g.s.EqualAbsent
			if na > 0 {
				sc = g.s.EqualPresent
			}
			g.add(constraint.ColorRoomCountEqual, constraint.Params{Color: a, ColorB: b}, sc)
		}
	}

	for _, ta := range board.ObjectTypes {
		for _, tb := range board.ObjectTypes {
			if ta == tb || g.b.CountType(ta) == 0 {
				continue
			}
			p := constraint.Params{Type: ta, TypeB: tb}
			if constraint.New(constraint.TypeImpliesType, p).Evaluate(g.b) {
				g.add(constraint.TypeImpliesType, p, g.s.TypeImplies)
			}
		}
	}

	for _, st := range board.Styles {
		if g.b.CountStyle(st) == 0 {
			continue
		}
		p := constraint.Params{Style: st}
		if constraint.New(constraint.OneStylePerRoom, p).Evaluate(g.b) {
			g.add(constraint.OneStylePerRoom, p, g.s.OneStyle)
		}
	}
}

func (g *generator) temperature() {
	emit := func(k constraint.Kind, n int) {
		if n >= 2 {
			g.add(k, constraint.Params{N: n}, g.s.TempTight)
		}
		if n >= 3 {
			g.add(k, constraint.Params{N: n - 1}, g.s.TempLoose)
		}
	}
	emit(constraint.AtLeastNWarm, g.b.WarmCount())
	emit(constraint.AtLeastNCool, g.b.CoolCount())
}
