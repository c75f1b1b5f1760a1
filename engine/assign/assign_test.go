package assign

import (
	"testing"

	"github.com/nathoo/decorum/engine/board"
	"github.com/nathoo/decorum/engine/candidates"
	"github.com/nathoo/decorum/engine/constraint"
	"github.com/nathoo/decorum/engine/rng"
)

func testTarget() *board.Board {
	b := board.New(board.Roommates)
	b.Paint("Bedroom A", board.Blue)
	b.Paint("Living Room", board.Yellow)
	b.Add("Bedroom A", board.Token{Type: board.Lamp, Style: board.Modern})
	b.Add("Bedroom B", board.Token{Type: board.Curio, Style: board.Antique})
	b.Add("Living Room", board.Token{Type: board.WallHanging, Style: board.Retro})
	b.Add("Kitchen", board.Token{Type: board.Lamp, Style: board.Unusual})
	return b
}

func TestDedup_KeepsHighestScore(t *testing.T) {
	p := constraint.Params{Room: "Kitchen", Color: board.Red}
	q := constraint.Params{Room: "Kitchen", Color: board.Blue}
	in := []constraint.Constraint{
		{Kind: constraint.RoomWallColorIs, Params: p, Score: 3},
		{Kind: constraint.RoomWallColorIsNot, Params: q, Score: 2},
		{Kind: constraint.RoomWallColorIs, Params: p, Score: 6},
		{Kind: constraint.RoomWallColorIs, Params: p, Score: 1},
	}
	out := Dedup(in)
	if len(out) != 2 {
		t.Fatalf("Dedup returned %d, want 2", len(out))
	}
	if out[0].Score != 6 {
		t.Errorf("kept score = %.1f, want 6", out[0].Score)
	}
	if out[1].Kind != constraint.RoomWallColorIsNot {
		t.Errorf("first-seen order not preserved: %v", out)
	}
}

func TestAllocate_UniqueAndQuota(t *testing.T) {
	b := testTarget()
	cands := candidates.Generate(b, candidates.DefaultScores())

	for seed := int64(1); seed <= 25; seed++ {
		for players := 2; players <= 4; players++ {
			a := Allocate(cands, b.Variant(), players, 4, DefaultWeights(), rng.New(seed))
			if a.Players() != players {
				t.Fatalf("got %d players, want %d", a.Players(), players)
			}
			seen := map[constraint.Key]int{}
			for p, cs := range a {
				if len(cs) != 4 {
					t.Errorf("seed %d: player %d has %d constraints, want 4", seed, p, len(cs))
				}
				for _, c := range cs {
					if prev, dup := seen[c.Key()]; dup {
						t.Fatalf("seed %d: %s dealt to players %d and %d", seed, c, prev, p)
					}
					seen[c.Key()] = p
					if !c.Evaluate(b) {
						t.Errorf("seed %d: assigned %s is false on the target", seed, c)
					}
				}
			}
			for p, v := range a.Violations(b) {
				if v != 0 {
					t.Errorf("player %d has %d violations on the target", p, v)
				}
			}
		}
	}
}

func TestAllocate_Exhaustion(t *testing.T) {
	pool := []constraint.Constraint{
		{Kind: constraint.RoomWallWarm, Params: constraint.Params{Room: "Kitchen"}, Score: 4},
		{Kind: constraint.RoomWallWarm, Params: constraint.Params{Room: "Bedroom"}, Score: 4},
		{Kind: constraint.RoomWallWarm, Params: constraint.Params{Room: "Bathroom"}, Score: 4},
		{Kind: constraint.RoomWallWarm, Params: constraint.Params{Room: "Kitchen"}, Score: 5},
	}
	a := Allocate(pool, board.TwoPlayer, 2, 3, DefaultWeights(), rng.New(1))

	if got := len(a.All()); got != 3 {
		t.Fatalf("dealt %d constraints from a pool of 3 unique, want 3", got)
	}
	if len(a[0]) != 2 || len(a[1]) != 1 {
		t.Errorf("round-robin shortfall: player sizes %d/%d, want 2/1", len(a[0]), len(a[1]))
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	b := testTarget()
	cands := candidates.Generate(b, candidates.DefaultScores())

	a1 := Allocate(cands, b.Variant(), 3, 4, DefaultWeights(), rng.New(42))
	a2 := Allocate(cands, b.Variant(), 3, 4, DefaultWeights(), rng.New(42))
	for p := range a1 {
		for i := range a1[p] {
			if a1[p][i] != a2[p][i] {
				t.Fatalf("player %d rule %d differs: %s vs %s", p, i, a1[p][i], a2[p][i])
			}
		}
	}
}

func TestCompatibility(t *testing.T) {
	w := DefaultWeights()
	v := board.TwoPlayer
	pr := profile{rooms: map[string]bool{}, kinds: map[constraint.Kind]bool{}}

	c := constraint.Constraint{Kind: constraint.RoomHasType, Params: constraint.Params{Room: "Kitchen", Type: board.Lamp}, Score: 5}
	// Fresh player: new room, new kind, missing positive.
	if got := pr.compatibility(c, v, w); got != 5+1.5+1+1 {
		t.Errorf("fresh compatibility = %.2f, want 8.5", got)
	}

	pr.take(c, v)
	pr.take(constraint.Constraint{Kind: constraint.RoomNoType, Params: constraint.Params{Room: "Bedroom", Type: board.Curio}}, v)

	// Same kind, covered room, player already spans two rooms.
	again := constraint.Constraint{Kind: constraint.RoomHasType, Params: constraint.Params{Room: "Kitchen", Type: board.Curio}, Score: 1}
	if got := pr.compatibility(again, v, w); got != w.Floor {
		t.Errorf("over-concentrated compatibility = %.2f, want floor %.2f", got, w.Floor)
	}

	// Global kinds reference no rooms and are never concentration-penalized.
	global := constraint.Constraint{Kind: constraint.AtLeastNWarm, Params: constraint.Params{N: 2}, Score: 5}
	if got := pr.compatibility(global, v, w); got != 6 {
		t.Errorf("global compatibility = %.2f, want 6", got)
	}
}
