// Package report combines the analytics and the recommender into one
// insight report per user and publishes it to an output destination.
package report

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/recommender"
	"github.com/lucsky/cuid"
)

type Report struct {
	ID               string                      `json:"id"`
	UserID           string                      `json:"userId"`
	Timestamp        int64                       `json:"timestamp"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
	HealthScore      analytics.HealthScore       `json:"healthScore"`
	WhatIf           []analytics.WhatIfScenario  `json:"whatIf"`
	WeightPrediction analytics.WeightPrediction  `json:"weightPrediction"`
	WeeklyWrap       analytics.WeeklyWrap        `json:"weeklyWrap"`
	Recommendation   *recommender.Recommendation `json:"recommendation,omitempty"`
}

// Input is everything known about one user at report time.
type Input struct {
	UserID   string
	Profile  models.Profile
	Days     []models.DayRecord
	Patterns []models.PatternResult
	Context  *models.RecommendationContext
	Options  []recommender.Option
}

// Build runs every analysis for one user. The recommendation is omitted
// when the input carries no context.
func Build(in Input, settings models.RecommenderConfig, now time.Time) Report {
	health := analytics.CalculateHealthScore(in.Patterns, in.Profile)
	weight := analytics.PredictWeightAt(in.Days, in.Profile, now)

	r := Report{
		ID:               cuid.New(),
		UserID:           in.UserID,
		Timestamp:        now.Unix(),
		GeneratedAt:      now.UTC(),
		HealthScore:      health,
		WhatIf:           analytics.GenerateWhatIfScenarios(in.Patterns, health, in.Days, in.Profile),
		WeightPrediction: weight,
		WeeklyWrap:       analytics.GenerateWeeklyWrap(in.Days, in.Patterns, health, weight, in.Profile, nil),
	}

	if in.Context != nil {
		opts := append([]recommender.Option{recommender.WithClock(func() time.Time { return now })}, in.Options...)
		rec := recommender.New(settings, opts...).Recommend(in.Context, in.Profile, in.Days)
		r.Recommendation = &rec
	}
	return r
}

// ContextFromHistory derives a recommendation context for now. When the
// newest day is today its meals, stress and mood are carried over;
// otherwise the day starts empty.
func ContextFromHistory(days []models.DayRecord, now time.Time) *models.RecommendationContext {
	rc := &models.RecommendationContext{
		CurrentTime: models.FormatClock(models.ClockOf(now)),
	}
	if len(days) == 0 {
		return rc
	}
	today := days[len(days)-1]
	if today.Date != now.Format(models.DateLayout) {
		return rc
	}

	rc.DayTarget.Kcal = today.TargetKcal
	rc.Stress = today.Stress
	rc.Mood = today.Mood

	var last *models.Meal
	var lastAt float64
	for i, m := range today.Meals {
		rc.DayEaten.Kcal += m.Kcal
		rc.DayEaten.Protein += m.Protein
		rc.DayEaten.Carbs += m.Carbs
		rc.DayEaten.Fat += m.Fat

		at, err := models.ParseClock(m.Time)
		if err != nil {
			continue
		}
		if last == nil || at >= lastAt {
			last, lastAt = &today.Meals[i], at
		}
	}
	if last != nil {
		rc.LastMeal = &models.LastMeal{
			Time:    last.Time,
			Kcal:    last.Kcal,
			Protein: last.Protein,
			Carbs:   last.Carbs,
			Fat:     last.Fat,
		}
	}
	return rc
}
