package rng

// Seed-advancing hash and derivation functions for reproducible runs.
// The same seed always yields the same sequence, so replays and
// wrong-press note generation are deterministic.

// Hash advances a seed one step using the splitmix64 finalizer.
func Hash(seed uint64) uint64 {
	seed += 0x9E3779B97F4A7C15
	z := seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Scale derives a uniform sample in [0, 1) from a seed without advancing it.
func Scale(seed uint64) float64 {
	return float64(seed>>11) / (1 << 53)
}

// Intn derives a value in [0, n) from a seed without advancing it.
func Intn(seed uint64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Scale(seed) * float64(n))
}
