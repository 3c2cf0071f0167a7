package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
)

const minWeightPoints = 3

type WeightPrediction struct {
	Available          bool     `json:"available"`
	CurrentWeight      float64  `json:"currentWeight,omitempty"`
	GoalWeight         *float64 `json:"goalWeight"`
	RawTrend           float64  `json:"rawTrend"`
	CleanTrend         float64  `json:"cleanTrend"`
	WeeklyChange       float64  `json:"weeklyChange"`
	ProjectedWeight    float64  `json:"projectedWeight,omitempty"`
	WeeksToGoal        *int     `json:"weeksToGoal"`
	ReachDate          *string  `json:"reachDate"`
	DataPoints         int      `json:"dataPoints"`
	CleanDataPoints    int      `json:"cleanDataPoints"`
	HasCycleAdjustment bool     `json:"hasCycleAdjustment"`
	Insight            string   `json:"insight"`
}

type weighIn struct {
	date   time.Time
	weight float64
	early  bool
}

// PredictWeight forecasts weight from morning weigh-ins relative to today.
func PredictWeight(days []models.DayRecord, profile models.Profile) WeightPrediction {
	return PredictWeightAt(days, profile, time.Now())
}

// PredictWeightAt fits kg/day slopes against elapsed days, once on every
// weigh-in and once without early-cycle days, and projects a week ahead.
func PredictWeightAt(days []models.DayRecord, profile models.Profile, now time.Time) WeightPrediction {
	var data []weighIn
	for _, d := range days {
		if d.WeightMorning <= 0 {
			continue
		}
		date, err := d.ParsedDate()
		if err != nil {
			continue
		}
		data = append(data, weighIn{date: date, weight: d.WeightMorning, early: d.InEarlyCycle()})
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].date.Before(data[j].date) })

	if len(data) < minWeightPoints {
		return WeightPrediction{
			Available:  false,
			DataPoints: len(data),
			Insight:    "Not enough weigh-ins for a forecast",
		}
	}

	var clean []weighIn
	for _, w := range data {
		if !w.early {
			clean = append(clean, w)
		}
	}

	rawTrend := stats.LinearRegression(weightPoints(data))
	cleanTrend := rawTrend
	if len(clean) >= minWeightPoints {
		cleanTrend = stats.LinearRegression(weightPoints(clean))
	}

	current := data[len(data)-1].weight
	weekly := cleanTrend * 7
	res := WeightPrediction{
		Available:          true,
		CurrentWeight:      current,
		RawTrend:           stats.RoundTo(rawTrend, 3),
		CleanTrend:         stats.RoundTo(cleanTrend, 3),
		WeeklyChange:       stats.RoundTo(weekly, 2),
		ProjectedWeight:    stats.RoundTo(current+weekly, 1),
		DataPoints:         len(data),
		CleanDataPoints:    len(clean),
		HasCycleAdjustment: len(clean) != len(data),
	}

	if profile.WeightGoal > 0 {
		goal := profile.WeightGoal
		res.GoalWeight = &goal
		diff := goal - current
		if cleanTrend != 0 && (cleanTrend > 0) == (diff > 0) && diff != 0 {
			weeks := math.Abs(diff / weekly)
			rounded := int(stats.RoundHalfUp(weeks))
			reach := now.AddDate(0, 0, int(stats.RoundHalfUp(weeks*7))).Format(models.DateLayout)
			res.WeeksToGoal = &rounded
			res.ReachDate = &reach
		}
	}

	switch {
	case weekly > 0.3:
		res.Insight = fmt.Sprintf("Gaining ~%.2f kg/week", stats.RoundTo(weekly, 2))
	case weekly < -0.3:
		res.Insight = fmt.Sprintf("Losing ~%.2f kg/week", math.Abs(stats.RoundTo(weekly, 2)))
	default:
		res.Insight = "Weight is stable"
	}
	return res
}

func weightPoints(data []weighIn) []stats.Point {
	if len(data) == 0 {
		return nil
	}
	start := data[0].date
	points := make([]stats.Point, len(data))
	for i, w := range data {
		points[i] = stats.Point{X: w.date.Sub(start).Hours() / 24, Y: w.weight}
	}
	return points
}
