package stats

import "math"

type OutlierStats struct {
	Q1          float64 `json:"q1"`
	Q3          float64 `json:"q3"`
	IQR         float64 `json:"iqr"`
	LowerBound  float64 `json:"lowerBound"`
	UpperBound  float64 `json:"upperBound"`
	N           int     `json:"n"`
	NOutliers   int     `json:"nOutliers"`
	OutlierRate float64 `json:"outlierRate"`
}

type OutlierResult struct {
	Outliers []float64     `json:"outliers"`
	Cleaned  []float64     `json:"cleaned"`
	Indices  []int         `json:"indices"`
	Stats    *OutlierStats `json:"stats"`
	Warning  string        `json:"warning,omitempty"`
}

// DetectOutliers flags values outside Tukey fences q1-k*IQR and q3+k*IQR.
// Non-finite values are dropped first; indices refer to the filtered series.
// multiplier <= 0 means the conventional 1.5.
func DetectOutliers(xs []float64, multiplier float64) OutlierResult {
	if multiplier <= 0 {
		multiplier = 1.5
	}
	values := finite(xs)
	if len(values) < 4 {
		return OutlierResult{
			Outliers: []float64{},
			Cleaned:  values,
			Indices:  []int{},
			Warning:  WarningInsufficientData,
		}
	}

	q1 := Percentile(values, 25)
	q3 := Percentile(values, 75)
	iqr := q3 - q1
	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	res := OutlierResult{
		Outliers: []float64{},
		Cleaned:  make([]float64, 0, len(values)),
		Indices:  []int{},
	}
	for i, v := range values {
		if v < lower || v > upper {
			res.Outliers = append(res.Outliers, v)
			res.Indices = append(res.Indices, i)
			continue
		}
		res.Cleaned = append(res.Cleaned, v)
	}
	res.Stats = &OutlierStats{
		Q1:          q1,
		Q3:          q3,
		IQR:         iqr,
		LowerBound:  lower,
		UpperBound:  upper,
		N:           len(values),
		NOutliers:   len(res.Outliers),
		OutlierRate: math.Round(float64(len(res.Outliers))/float64(len(values))*1000) / 1000,
	}
	return res
}
