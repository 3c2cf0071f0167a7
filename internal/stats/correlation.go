package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	WarningInsufficientSample = "insufficient_sample_size"
	WarningInsufficientData   = "insufficient_data"
	WarningZeroVariance       = "zero_variance"
	WarningZeroStdError       = "zero_standard_error"

	EffectInsufficientData = "insufficient_data"
	EffectNoVariance       = "no_variance"
	EffectNegligible       = "negligible"
	EffectSmall            = "small"
	EffectMedium           = "medium"
	EffectLarge            = "large"
)

// PearsonCorrelation returns r, or 0 when n<3, the lengths differ or either
// series has no variance.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 3 {
		return 0
	}
	r, err := mstats.Correlation(x, y)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return Clamp(r, -1, 1)
}

type SignificanceResult struct {
	R              float64 `json:"r"`
	PValue         float64 `json:"pValue"`
	IsSignificant  bool    `json:"isSignificant"`
	N              int     `json:"n"`
	DF             int     `json:"df"`
	TStat          float64 `json:"tStat"`
	EffectSize     string  `json:"effectSize"`
	Interpretation string  `json:"interpretation"`
	Warning        string  `json:"warning,omitempty"`
}

// correlationEffect applies Cohen's conventions for |r|.
func correlationEffect(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs < 0.1:
		return EffectNegligible
	case abs < 0.3:
		return EffectSmall
	case abs < 0.5:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// twoTailedT returns the two-tailed p-value of t under Student's t with df
// degrees of freedom.
func twoTailedT(t, df float64) float64 {
	if df <= 0 || math.IsNaN(t) {
		return 1
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	return Clamp(p, 0, 1)
}

// PearsonWithSignificance tests r against zero with a t-test on n-2 degrees
// of freedom. alpha <= 0 means 0.05.
func PearsonWithSignificance(x, y []float64, alpha float64) SignificanceResult {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	n := len(x)
	if len(x) != len(y) || n < 3 {
		return SignificanceResult{
			R:              0,
			PValue:         1,
			N:              n,
			EffectSize:     EffectInsufficientData,
			Interpretation: "insufficient sample size (n<3)",
			Warning:        WarningInsufficientSample,
		}
	}

	df := n - 2
	if Variance(x) == 0 || Variance(y) == 0 {
		return SignificanceResult{
			R:              0,
			PValue:         1,
			N:              n,
			DF:             df,
			EffectSize:     EffectNoVariance,
			Interpretation: "no variance in one or both variables",
		}
	}

	r := PearsonCorrelation(x, y)
	// keeps t finite for |r| == 1
	residual := math.Max(1-r*r, 1e-12)
	t := r * math.Sqrt(float64(df)/residual)
	p := twoTailedT(t, float64(df))

	res := SignificanceResult{
		R:             r,
		PValue:        p,
		IsSignificant: p < alpha,
		N:             n,
		DF:            df,
		TStat:         t,
		EffectSize:    correlationEffect(r),
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	var verdict string
	if res.IsSignificant {
		verdict = fmt.Sprintf("statistically significant (p<%g)", alpha)
	} else {
		verdict = fmt.Sprintf("not significant (p≈%.2f)", p)
	}
	if math.Abs(r) > 0.99 {
		res.Interpretation = fmt.Sprintf("perfect %s relationship, %s", direction, verdict)
	} else {
		res.Interpretation = fmt.Sprintf("%s %s effect, %s", res.EffectSize, direction, verdict)
	}
	return res
}

type BayesianResult struct {
	PosteriorR     float64 `json:"posteriorR"`
	ObservedR      float64 `json:"observedR"`
	PriorR         float64 `json:"priorR"`
	Shrinkage      float64 `json:"shrinkage"`
	EffectiveN     float64 `json:"effectiveN"`
	ObservedN      int     `json:"observedN"`
	PriorWeight    float64 `json:"priorWeight"`
	Confidence     float64 `json:"confidence"`
	Interpretation string  `json:"interpretation"`
	Warning        string  `json:"warning,omitempty"`
}

// BayesianCorrelation shrinks the observed r toward priorR, weighting the
// prior as if it were priorWeight extra observations.
func BayesianCorrelation(x, y []float64, priorR, priorWeight float64) BayesianResult {
	if priorWeight < 0 {
		priorWeight = 0
	}
	n := len(x)
	if len(x) != len(y) || n < 2 {
		return BayesianResult{
			PosteriorR:     priorR,
			PriorR:         priorR,
			Shrinkage:      1,
			EffectiveN:     priorWeight,
			ObservedN:      n,
			PriorWeight:    priorWeight,
			Confidence:     0.1,
			Interpretation: "not enough data, prior only",
			Warning:        WarningInsufficientData,
		}
	}

	observed := PearsonCorrelation(x, y)
	fn := float64(n)
	posterior := (observed*fn + priorR*priorWeight) / (fn + priorWeight)
	shrinkage := math.Abs(observed - posterior)

	res := BayesianResult{
		PosteriorR:  posterior,
		ObservedR:   observed,
		PriorR:      priorR,
		Shrinkage:   shrinkage,
		EffectiveN:  fn + priorWeight,
		ObservedN:   n,
		PriorWeight: priorWeight,
		Confidence:  math.Min(0.95, fn/(fn+priorWeight)),
	}
	switch {
	case shrinkage > 0.2:
		res.Interpretation = "strong shrinkage: small sample, treat with caution"
	case shrinkage > 0.1:
		res.Interpretation = "moderate shrinkage toward prior"
	default:
		res.Interpretation = "minimal shrinkage: data dominates prior"
	}
	return res
}

type CorrelationCI struct {
	R       float64 `json:"r"`
	N       int     `json:"n"`
	Level   float64 `json:"level"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Margin  float64 `json:"margin"`
	Width   float64 `json:"width"`
	Warning string  `json:"warning,omitempty"`
}

// CorrelationInterval is the Fisher z confidence interval for r.
func CorrelationInterval(r float64, n int, level float64) CorrelationCI {
	if level <= 0 || level >= 1 {
		level = 0.95
	}
	if n < 4 {
		return CorrelationCI{
			R: r, N: n, Level: level,
			Lower: -1, Upper: 1, Margin: 1, Width: 2,
			Warning: WarningInsufficientSample,
		}
	}

	z := math.Atanh(Clamp(r, -0.9999, 0.9999))
	se := 1 / math.Sqrt(float64(n-3))
	crit := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	margin := crit * se

	lower := Clamp(math.Tanh(z-margin), -1, 1)
	upper := Clamp(math.Tanh(z+margin), -1, 1)
	return CorrelationCI{
		R:      r,
		N:      n,
		Level:  level,
		Lower:  lower,
		Upper:  upper,
		Margin: (upper - lower) / 2,
		Width:  upper - lower,
	}
}
