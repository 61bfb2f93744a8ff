package game

import "math/rand"

// Chance returns true with probability p (0.0 to 1.0).
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// IntBetween returns a random integer in [lo, hi] inclusive.
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// BiasedIntBetween returns a random integer in [lo, hi] inclusive with
// values in [biasLo, biasHi] weighted strength times more likely than the
// rest. Used for balloon appearance times, which favor the first half of
// a wave's window.
func BiasedIntBetween(rng *rand.Rand, lo, hi, biasLo, biasHi, strength int) int {
	if hi <= lo {
		return lo
	}
	if strength < 1 {
		strength = 1
	}

	total := 0
	for v := lo; v <= hi; v++ {
		if v >= biasLo && v <= biasHi {
			total += strength
		} else {
			total++
		}
	}

	pick := rng.Intn(total)
	for v := lo; v <= hi; v++ {
		w := 1
		if v >= biasLo && v <= biasHi {
			w = strength
		}
		if pick < w {
			return v
		}
		pick -= w
	}
	return hi
}
