package engine

import "testing"

func TestRoll_Range(t *testing.T) {
	rng := NewRNG(42)
	for i := 0; i < 1000; i++ {
		roll := rng.Roll(6)
		if roll < 1 || roll > 6 {
			t.Fatalf("Roll(6) = %d, out of range", roll)
		}
	}
}

func TestRoll_Deterministic(t *testing.T) {
	rng1 := NewRNG(99)
	rng2 := NewRNG(99)
	for i := 0; i < 100; i++ {
		if r1, r2 := rng1.Roll(20), rng2.Roll(20); r1 != r2 {
			t.Fatalf("iteration %d: %d != %d", i, r1, r2)
		}
	}
}

func TestChance_Bounds(t *testing.T) {
	rng := NewRNG(42)
	for i := 0; i < 100; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) must never succeed")
		}
		if rng.Chance(-5) {
			t.Fatal("negative chance must never succeed")
		}
		if !rng.Chance(100) {
			t.Fatal("Chance(100) must always succeed")
		}
	}
}

func TestChance_RoughDistribution(t *testing.T) {
	rng := NewRNG(7)
	hits := 0
	for i := 0; i < 10000; i++ {
		if rng.Chance(30) {
			hits++
		}
	}
	if hits < 2500 || hits > 3500 {
		t.Errorf("Chance(30) hit %d/10000, expected ~3000", hits)
	}
}

func TestRange_Inclusive(t *testing.T) {
	rng := NewRNG(42)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := rng.Range(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("Range(-2,2) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := -2; v <= 2; v++ {
		if !seen[v] {
			t.Errorf("Range(-2,2) never produced %d in 1000 draws", v)
		}
	}
}

func TestRange_DegenerateInterval(t *testing.T) {
	rng := NewRNG(42)
	if v := rng.Range(5, 5); v != 5 {
		t.Errorf("Range(5,5) = %d, want 5", v)
	}
	if v := rng.Range(5, 3); v != 5 {
		t.Errorf("Range(5,3) = %d, want min", v)
	}
}

func TestPosition_CountsDraws(t *testing.T) {
	rng := NewRNG(42)
	if rng.Position() != 0 {
		t.Errorf("fresh position = %d, want 0", rng.Position())
	}
	rng.Roll(6)
	rng.Roll(6)
	rng.Range(1, 10)
	if rng.Position() != 3 {
		t.Errorf("position = %d, want 3", rng.Position())
	}
	// Degenerate Range consumes nothing.
	rng.Range(5, 5)
	if rng.Position() != 3 {
		t.Errorf("position after degenerate range = %d, want 3", rng.Position())
	}
}

func TestRestoreRNG_ResumesSequence(t *testing.T) {
	original := NewRNG(1234)
	for i := 0; i < 10; i++ {
		original.Roll(100)
	}

	restored := RestoreRNG(1234, original.Position())
	if restored.Position() != original.Position() {
		t.Fatalf("restored position = %d, want %d", restored.Position(), original.Position())
	}
	for i := 0; i < 50; i++ {
		want := original.Roll(100)
		got := restored.Roll(100)
		if got != want {
			t.Fatalf("draw %d after restore: got %d, want %d", i, got, want)
		}
	}
}
