package generator

import (
	"math"
	"math/rand"
)

// sampleNormal draws from N(mean, std) via the Box-Muller transform.
func sampleNormal(rng *rand.Rand, mean, std float64) float64 {
	u1 := rng.Float64()
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*std
}

// sampleLogNormal draws from a log-normal with the given underlying normal
// parameters, clamped to [min, max].
func sampleLogNormal(rng *rand.Rand, mu, sigma, min, max float64) float64 {
	v := math.Exp(sampleNormal(rng, mu, sigma))
	return clamp(v, min, max)
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// weightedIndex picks an index proportionally to weights. Zero total weight
// falls back to the last index.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return len(weights) - 1
	}
	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}
