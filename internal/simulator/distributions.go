package simulator

import (
	"math"
	"math/rand"
)

// normal draws from N(mean, std) with the Box-Muller transform.
func normal(rng *rand.Rand, mean, std float64) float64 {
	u1 := 1 - rng.Float64() // (0, 1], keeps the log finite
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*std
}

func normalClamped(rng *rand.Rand, mean, std, min, max float64) float64 {
	return math.Max(min, math.Min(max, normal(rng, mean, std)))
}

// chance reports true with probability p.
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
