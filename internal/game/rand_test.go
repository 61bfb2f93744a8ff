package game

import (
	"math/rand"
	"testing"
)

func TestIntBetween_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		v := IntBetween(rng, 5, 15)
		if v < 5 || v > 15 {
			t.Fatalf("IntBetween(5, 15) = %d", v)
		}
	}

	if v := IntBetween(rng, 4, 4); v != 4 {
		t.Errorf("degenerate range = %d, want 4", v)
	}
}

func TestBiasedIntBetween_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		v := BiasedIntBetween(rng, 0, 20, 0, 10, 10)
		if v < 0 || v > 20 {
			t.Fatalf("BiasedIntBetween out of range: %d", v)
		}
	}
}

func TestBiasedIntBetween_FavorsBiasWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// With strength 10 on the first half, the bias window should receive
	// the large majority of draws.
	inBias := 0
	const draws = 5000
	for i := 0; i < draws; i++ {
		if v := BiasedIntBetween(rng, 0, 20, 0, 10, 10); v <= 10 {
			inBias++
		}
	}

	// Expected share is 110/120 ~ 92%; allow generous slack.
	if float64(inBias)/draws < 0.8 {
		t.Errorf("bias window share = %.2f, want > 0.8", float64(inBias)/draws)
	}
}

func TestChance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	if Chance(rng, 0) {
		t.Error("Chance(0) should never be true")
	}
	if !Chance(rng, 1) {
		t.Error("Chance(1) should always be true")
	}
}
