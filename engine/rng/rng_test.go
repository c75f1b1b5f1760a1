package rng

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := New(42)
	rng2 := New(42)

	for i := 0; i < 20; i++ {
		a := rng1.Intn(6)
		b := rng2.Intn(6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	r := New(99)

	for i := 0; i < 1000; i++ {
		v := r.Intn(6)
		if v < 0 || v > 5 {
			t.Fatalf("draw out of range [0,5]: got %d", v)
		}
	}
}

func TestRNG_IntRange_Inclusive(t *testing.T) {
	r := New(7)
	seen := map[int]bool{}

	for i := 0; i < 500; i++ {
		v := r.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange(3,5) out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 3,4,5 to appear, saw %v", seen)
	}
	if got := r.IntRange(4, 4); got != 4 {
		t.Errorf("IntRange(4,4) = %d, want 4", got)
	}
}

func TestRNG_Float64_Range(t *testing.T) {
	r := New(5)

	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", f)
		}
	}
}

func TestRNG_WeightedSelect_Deterministic(t *testing.T) {
	rng1 := New(42)
	rng2 := New(42)
	weights := []float64{70, 20, 10}

	for i := 0; i < 20; i++ {
		a := rng1.WeightedSelect(weights)
		b := rng2.WeightedSelect(weights)
		if a != b {
			t.Fatalf("selection %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_WeightedSelect_Distribution(t *testing.T) {
	r := New(12345)
	weights := []float64{0.7, 0.2, 0.1}
	counts := [3]int{}

	const trials = 10000
	for i := 0; i < trials; i++ {
		idx := r.WeightedSelect(weights)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}

	// With 10k trials, expect roughly 70%/20%/10% ± some margin.
	if counts[0] < 6000 || counts[0] > 8000 {
		t.Errorf("expected ~7000 for weight 0.7, got %d", counts[0])
	}
	if counts[1] < 1000 || counts[1] > 3000 {
		t.Errorf("expected ~2000 for weight 0.2, got %d", counts[1])
	}
	if counts[2] < 200 || counts[2] > 1800 {
		t.Errorf("expected ~1000 for weight 0.1, got %d", counts[2])
	}
}

func TestRNG_WeightedSelect_SingleOption(t *testing.T) {
	r := New(1)

	for i := 0; i < 10; i++ {
		if idx := r.WeightedSelect([]float64{0.3}); idx != 0 {
			t.Fatalf("single option should always be 0, got %d", idx)
		}
	}
}

func TestRNG_Shuffle_Permutation(t *testing.T) {
	r := New(11)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	seen := map[int]bool{}
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle lost elements: %v", xs)
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	r := New(42)

	if r.Position() != 0 {
		t.Fatalf("expected position 0, got %d", r.Position())
	}

	r.Intn(6)
	if r.Position() != 1 {
		t.Fatalf("expected position 1, got %d", r.Position())
	}

	r.WeightedSelect([]float64{50, 50})
	if r.Position() != 2 {
		t.Fatalf("expected position 2, got %d", r.Position())
	}

	r.Float64()
	r.Chance(0.5)
	if r.Position() != 4 {
		t.Fatalf("expected position 4, got %d", r.Position())
	}
}

func TestRNG_Restore_MatchesPosition(t *testing.T) {
	// Advance an RNG to position 10 with mixed draws and record the next 5.
	r := New(42)
	for i := 0; i < 5; i++ {
		r.Intn(6)
		r.Float64()
	}

	var expected [5]int
	for i := range expected {
		expected[i] = r.Intn(1000)
	}

	restored := Restore(42, 10)
	if restored.Position() != 10 {
		t.Fatalf("expected position 10, got %d", restored.Position())
	}

	for i, want := range expected {
		got := restored.Intn(1000)
		if got != want {
			t.Fatalf("draw %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := New(1)
	rng2 := New(2)

	differs := false
	for i := 0; i < 20; i++ {
		if rng1.Intn(100) != rng2.Intn(100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
