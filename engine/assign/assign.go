// Package assign deals scored candidates to players. No constraint instance
// is ever dealt twice.
package assign

import (
	"sort"

	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/rng"
	"github.com/nathoo/decorum/types"
)

// DefaultWeights returns the stock compatibility bonuses and penalties.
func DefaultWeights() types.AllocationWeights {
	return types.AllocationWeights{
		NewRoom:       1.5,
		NewKind:       1.0,
		Polarity:      1.0,
		Concentration: 2.0,
		RepeatKind:    1.5,
		Floor:         0.1,
	}
}

// Assignment holds each player's constraints, indexed by player.
type Assignment [][]constraint.Constraint

// Players returns the number of players.
func (a Assignment) Players() int {
	return len(a)
}

// All returns every assigned constraint, player by player.
func (a Assignment) All() []constraint.Constraint {
	var out []constraint.Constraint
	for _, cs := range a {
		out = append(out, cs...)
	}
	return out
}

// Violations returns, per player, how many constraints are false on b.
func (a Assignment) Violations(b *board.Board) []int {
	out := make([]int, len(a))
	for p, cs := range a {
		out[p] = constraint.CountViolated(cs, b)
	}
	return out
}

// Dedup keeps one constraint per identity, the highest scoring, in
// first-seen order.
func Dedup(cands []constraint.Constraint) []constraint.Constraint {
	index := make(map[constraint.Key]int, len(cands))
	var out []constraint.Constraint
	for _, c := range cands {
		if i, ok := index[c.Key()]; ok {
			if c.Score > out[i].Score {
				out[i] = c
			}
			continue
		}
		index[c.Key()] = len(out)
		out = append(out, c)
	}
	return out
}

// profile tracks what one player already holds.
type profile struct {
	rooms    map[string]bool
	kinds    map[constraint.Kind]bool
	positive bool
	negative bool
}

func (p *profile) take(c constraint.Constraint, v board.Variant) {
	for _, r := range c.Rooms(v) {
		p.rooms[r] = true
	}
	p.kinds[c.Kind] = true
	if c.Negative() {
		p.negative = true
	} else {
		p.positive = true
	}
}

// compatibility scores how well c fits the player's current hand.
func (p *profile) compatibility(c constraint.Constraint, v board.Variant, w types.AllocationWeights) float64 {
	sc := c.Score
	refs := c.Rooms(v)

	fresh := false
	for _, r := range refs {
		if !p.rooms[r] {
			fresh = true
			break
		}
	}
	if fresh {
		sc += w.NewRoom
	}

	if p.kinds[c.Kind] {
		sc -= w.RepeatKind
	} else {
		sc += w.NewKind
	}

	if c.Negative() && !p.negative || !c.Negative() && !p.positive {
		sc += w.Polarity
	}

	if len(refs) > 0 && !fresh && len(p.rooms) >= 2 {
		sc -= w.Concentration
	}

	return max(sc, w.Floor)
}

// Allocate deals up to quota unique constraints to each player from cands.
// Candidates are deduplicated, shuffled, then stably sorted by score so ties
// keep a random order. Each round visits players in index order and draws
// one candidate weighted by its compatibility with that player. Allocation
// stops early when the pool runs dry.
func Allocate(cands []constraint.Constraint, v board.Variant, players, quota int,
	w types.AllocationWeights, r *rng.RNG) Assignment {

	pool := Dedup(cands)
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })

	out := make(Assignment, players)
	profiles := make([]profile, players)
	for i := range profiles {
		profiles[i] = profile{rooms: map[string]bool{}, kinds: map[constraint.Kind]bool{}}
	}

	weights := make([]float64, 0, len(pool))
	for round := 0; round < quota; round++ {
		for p := 0; p < players; p++ {
			if len(pool) == 0 {
				return out
			}
			if len(out[p]) >= quota {
				continue
			}

			weights = weights[:0]
			for _, c := range pool {
				weights = append(weights, profiles[p].compatibility(c, v, w))
			}
			i := r.WeightedSelect(weights)
			chosen := pool[i]
			pool = append(pool[:i], pool[i+1:]...)

			out[p] = append(out[p], chosen)
			profiles[p].take(chosen, v)
		}
	}
	return out
}
