package models

import "math"

// PatternResult is the output of an external pattern analyzer as consumed by
// health scoring and the weekly wrap. Score is on a 0-100 scale.
type PatternResult struct {
	Pattern            PatternID `json:"pattern"`
	Available          bool      `json:"available"`
	Score              *float64  `json:"score,omitempty"`
	Confidence         float64   `json:"confidence"`
	Trend              *float64  `json:"trend,omitempty"`
	Insight            string    `json:"insight,omitempty"`
	IsPreliminary      bool      `json:"isPreliminary,omitempty"`
	DataPoints         int       `json:"dataPoints,omitempty"`
	RequiredDataPoints int       `json:"requiredDataPoints,omitempty"`

	HasOverlaps     bool    `json:"hasOverlaps,omitempty"`
	LateCount       *int    `json:"lateCount,omitempty"`
	AvgProteinPct   float64 `json:"avgProteinPct,omitempty"`
	AvgFiberPer1000 float64 `json:"avgFiberPer1000,omitempty"`
	Correlation     float64 `json:"correlation,omitempty"`
}

func (p PatternResult) Scored() bool {
	return p.Available && p.Score != nil
}

// PatternScore is what a meal-pattern analyzer reports for one pattern.
// Score may arrive on either a 0-1 or a 0-100 scale; nil means the analyzer
// had nothing to score.
type PatternScore struct {
	Available   bool     `json:"available"`
	Score       *float64 `json:"score"`
	Confidence  float64  `json:"confidence"`
	Correlation float64  `json:"correlation,omitempty"`
}

func (p PatternScore) Scored() bool {
	return p.Available && p.Score != nil
}

// NormalizeScore maps a raw score onto [0,1]. Values above 1 are treated as
// percentages. Non-finite input maps to the neutral 0.5.
func NormalizeScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0.5
	}
	if score > 1 {
		score /= 100
	}
	return math.Max(0, math.Min(1, score))
}

type AdaptiveThresholds struct {
	LateEatingHour  float64 `json:"lateEatingHour"`
	IdealMealGapMin int     `json:"idealMealGapMin"`
	Source          string  `json:"source"`
	Confidence      float64 `json:"confidence,omitempty"`
}

func DefaultThresholds() AdaptiveThresholds {
	return AdaptiveThresholds{
		LateEatingHour:  DefaultLateEatingHour,
		IdealMealGapMin: DefaultIdealMealGapMin,
		Source:          "default",
	}
}

type Phenotype struct {
	Metabolic  string  `json:"metabolic,omitempty"`
	Circadian  string  `json:"circadian,omitempty"`
	Satiety    string  `json:"satiety,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}
