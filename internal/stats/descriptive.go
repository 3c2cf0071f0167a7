// Package stats holds the statistical primitives shared by the analytics and
// recommendation engines. Every function is pure and degenerate input yields a
// neutral value instead of an error.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// Average is the arithmetic mean, 0 for empty input.
func Average(xs []float64) float64 {
	m, err := mstats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

// Variance is the population variance, 0 when fewer than two values are given.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	v, err := mstats.PopulationVariance(xs)
	if err != nil {
		return 0
	}
	return v
}

func StdDev(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	v, err := mstats.SampleVariance(xs)
	if err != nil {
		return 0
	}
	return v
}

// CoefficientOfVariation is StdDev / |mean|, 0 when the mean is 0.
func CoefficientOfVariation(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Average(xs)
	if mean == 0 {
		return 0
	}
	return StdDev(xs) / math.Abs(mean)
}

// Skewness uses the population moment estimator, 0 for n<3 or no spread.
func Skewness(xs []float64) float64 {
	n := len(xs)
	if n < 3 {
		return 0
	}
	mean := Average(xs)
	sd := StdDev(xs)
	if sd == 0 {
		return 0
	}
	var m3 float64
	for _, x := range xs {
		d := (x - mean) / sd
		m3 += d * d * d
	}
	return m3 / float64(n)
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	p = Clamp(p, 0, 100)
	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// NormalizeValue maps v from [min,max] onto [0,1]; 0 when the range is empty.
func NormalizeValue(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return Clamp((v-min)/(max-min), 0, 1)
}

// RoundHalfUp rounds half values toward positive infinity, so -2.5 becomes -2.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return RoundHalfUp(x*p) / p
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
