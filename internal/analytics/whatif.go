package analytics

import (
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
)

const (
	ScenarioIdeal   = "ideal"
	ScenarioCurrent = "current"
	ScenarioCrash   = "crash"

	idealPatternScore = 80.0
	crashPenalty      = 25
)

type WhatIfScenario struct {
	ID             string                       `json:"id"`
	Name           string                       `json:"name"`
	Description    string                       `json:"description"`
	CurrentScore   int                          `json:"currentScore"`
	ProjectedScore int                          `json:"projectedScore"`
	Improvements   map[models.PatternID]float64 `json:"improvements,omitempty"`
	Trend          string                       `json:"trend,omitempty"`
	Actions        []string                     `json:"actions"`
}

// GenerateWhatIfScenarios projects the health score under three scenarios:
// every weak pattern lifted to 80, the current trend continued for a week,
// and a week without control.
func GenerateWhatIfScenarios(patterns []models.PatternResult, health HealthScore, days []models.DayRecord, profile models.Profile) []WhatIfScenario {
	total := health.Total

	improvements := make(map[models.PatternID]float64)
	var boost float64
	for _, p := range patterns {
		if !p.Scored() {
			continue
		}
		if *p.Score < idealPatternScore {
			gain := idealPatternScore - *p.Score
			improvements[p.Pattern] = gain
			boost += gain * 0.1
		}
	}
	ideal := WhatIfScenario{
		ID:             ScenarioIdeal,
		Name:           "Ideal week",
		Description:    "Every pattern in the green zone",
		CurrentScore:   total,
		ProjectedScore: int(math.Min(100, float64(total)+stats.RoundHalfUp(boost))),
		Improvements:   improvements,
		Actions: []string{
			"Keep regular gaps between meals",
			"No eating after 21:00",
			"Protein in every meal",
			"Sleep 7-8 hours",
		},
	}

	var trends []float64
	for _, p := range patterns {
		if p.Trend != nil && !math.IsNaN(*p.Trend) {
			trends = append(trends, *p.Trend)
		}
	}
	avgTrend := stats.Average(trends)
	projection := float64(total) + stats.RoundHalfUp(avgTrend*7)
	current := WhatIfScenario{
		ID:             ScenarioCurrent,
		Name:           "Current course",
		Description:    "If you keep going as you are",
		CurrentScore:   total,
		ProjectedScore: int(stats.Clamp(projection, 0, 100)),
		Trend:          trendLabel(avgTrend),
	}
	if avgTrend >= 0 {
		current.Actions = []string{"Keep it up!"}
	} else {
		current.Actions = []string{"Watch the patterns that are getting worse"}
	}

	crash := WhatIfScenario{
		ID:             ScenarioCrash,
		Name:           "Letting go",
		Description:    "A week without any control",
		CurrentScore:   total,
		ProjectedScore: int(math.Max(0, float64(total-crashPenalty))),
		Actions: []string{
			"Weight may climb by 1-2 kg",
			"Energy will drop",
			"Sleep will get worse",
		},
	}

	return []WhatIfScenario{ideal, current, crash}
}

func trendLabel(avg float64) string {
	switch {
	case avg > 0:
		return "up"
	case avg < 0:
		return "down"
	default:
		return "stable"
	}
}
