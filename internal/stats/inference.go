package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
	DirectionNoChange = "no_change"

	// MinReliableN is the sample size below which confidences get penalised.
	MinReliableN = 7
)

type MeanCI struct {
	Mean   float64 `json:"mean"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Margin float64 `json:"margin"`
}

// ConfidenceInterval for the mean using the Student t quantile on n-1 degrees
// of freedom. The margin is 0 for fewer than two values.
func ConfidenceInterval(xs []float64, level float64) MeanCI {
	mean := Average(xs)
	if len(xs) < 2 {
		return MeanCI{Mean: mean, Lower: mean, Upper: mean}
	}
	if level <= 0 || level >= 1 {
		level = 0.95
	}
	n := float64(len(xs))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	crit := dist.Quantile(1 - (1-level)/2)
	margin := crit * StdDev(xs) / math.Sqrt(n)
	return MeanCI{Mean: mean, Lower: mean - margin, Upper: mean + margin, Margin: margin}
}

func CheckMinN(xs []float64, minN int) bool {
	return len(xs) >= minN
}

// ApplySmallSamplePenalty scales value linearly by n/minN below minN.
func ApplySmallSamplePenalty(value float64, n, minN int) float64 {
	if n <= 0 {
		return 0
	}
	if n >= minN {
		return value
	}
	return value * float64(n) / float64(minN)
}

// StatisticalPower is a closed-form approximation of test power for sample
// size n and standardized effect size.
func StatisticalPower(n int, effect float64) float64 {
	if n <= 2 || effect <= 0 {
		return 0
	}
	return math.Min(1, 1-math.Exp(-float64(n)*effect*effect/4))
}

type WarnedConfidence struct {
	Confidence float64 `json:"confidence"`
	Warning    string  `json:"warning,omitempty"`
}

// ConfidenceWithWarning penalises confidence for samples smaller than
// MinReliableN and attaches a warning naming n when the penalised value drops
// below threshold. threshold <= 0 means 0.5.
func ConfidenceWithWarning(confidence float64, n int, threshold float64) WarnedConfidence {
	if threshold <= 0 {
		threshold = 0.5
	}
	adjusted := ApplySmallSamplePenalty(confidence, n, MinReliableN)
	res := WarnedConfidence{Confidence: adjusted}
	if n < MinReliableN && adjusted < threshold {
		res.Warning = fmt.Sprintf("N=%d (min %d)", n, MinReliableN)
	}
	return res
}

type EffectSize struct {
	D              float64 `json:"d"`
	Interpretation string  `json:"interpretation"`
}

// CohenD is (mean(b) - mean(a)) / pooled standard deviation.
func CohenD(a, b []float64) EffectSize {
	if len(a) < 2 || len(b) < 2 {
		return EffectSize{Interpretation: EffectInsufficientData}
	}
	n1, n2 := float64(len(a)), float64(len(b))
	pooled := math.Sqrt(((n1-1)*sampleVariance(a) + (n2-1)*sampleVariance(b)) / (n1 + n2 - 2))
	if pooled == 0 {
		return EffectSize{Interpretation: EffectNoVariance}
	}
	d := (Average(b) - Average(a)) / pooled
	abs := math.Abs(d)
	var interp string
	switch {
	case abs < 0.2:
		interp = EffectNegligible
	case abs < 0.5:
		interp = EffectSmall
	case abs < 0.8:
		interp = EffectMedium
	default:
		interp = EffectLarge
	}
	return EffectSize{D: d, Interpretation: interp}
}

type TTestResult struct {
	TStat         float64 `json:"tStat"`
	PValue        float64 `json:"pValue"`
	DF            float64 `json:"df"`
	IsSignificant bool    `json:"isSignificant"`
	Direction     string  `json:"direction"`
	Mean1         float64 `json:"mean1"`
	Mean2         float64 `json:"mean2"`
	Diff          float64 `json:"diff"`
	Warning       string  `json:"warning,omitempty"`
}

// TwoSampleTTest is Welch's unequal-variance t-test of b against a.
// alpha <= 0 means 0.05.
func TwoSampleTTest(a, b []float64, alpha float64) TTestResult {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{PValue: 1, Direction: DirectionNoChange, Warning: WarningInsufficientSample}
	}

	mean1, mean2 := Average(a), Average(b)
	n1, n2 := float64(len(a)), float64(len(b))
	v1, v2 := sampleVariance(a)/n1, sampleVariance(b)/n2
	se := math.Sqrt(v1 + v2)
	res := TTestResult{Mean1: mean1, Mean2: mean2, Diff: mean2 - mean1, Direction: DirectionNoChange}
	if se == 0 {
		res.PValue = 1
		res.Warning = WarningZeroStdError
		return res
	}

	// Welch-Satterthwaite
	df := (v1 + v2) * (v1 + v2) / (v1*v1/(n1-1) + v2*v2/(n2-1))
	t := res.Diff / se
	res.TStat = t
	res.DF = df
	res.PValue = twoTailedT(t, df)
	res.IsSignificant = res.PValue < alpha
	switch {
	case res.Diff > 0:
		res.Direction = DirectionIncrease
	case res.Diff < 0:
		res.Direction = DirectionDecrease
	}
	return res
}
