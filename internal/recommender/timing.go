package recommender

import (
	"fmt"
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
)

// no eating in the last hours before sleep
const sleepBufferHours = 3.0

type Timing struct {
	Ideal              string  `json:"ideal"`
	IdealStart         float64 `json:"idealStart"`
	IdealEnd           float64 `json:"idealEnd"`
	CurrentTime        float64 `json:"currentTime"`
	HoursSinceLastMeal float64 `json:"hoursSinceLastMeal"`
	Reason             string  `json:"reason"`
}

// bedtimeAfter places a bedtime given on the clock after the current time:
// targets before noon are read as after midnight when it is already
// afternoon.
func bedtimeAfter(current, sleep float64) float64 {
	if sleep < 12 && current >= 12 {
		return sleep + 24
	}
	return sleep
}

// EstimateRemainingMeals counts how many full meal gaps fit between now and
// bedtime. All clock values are decimal hours; the result is never negative.
func EstimateRemainingMeals(currentTime, sleepTarget float64, idealGapMin int) int {
	if idealGapMin <= 0 {
		return 0
	}
	hours := bedtimeAfter(currentTime, sleepTarget) - currentTime
	if hours <= 0 {
		return 0
	}
	return int(math.Floor(hours / (float64(idealGapMin) / 60)))
}

func (r *Recommender) computeTiming(s dayState, scenario Scenario) Timing {
	gapHours := float64(s.thresholds.IdealMealGapMin) / 60
	t := Timing{CurrentTime: s.current}

	var start float64
	if !s.hasLastMeal {
		start = s.current
		t.Reason = "First meal of day: eat when you are hungry"
	} else {
		since := s.current - s.lastMeal
		if since < 0 {
			since = 0
		}
		t.HoursSinceLastMeal = stats.RoundTo(since, 1)
		start = math.Max(s.current, s.lastMeal+gapHours)
		t.Reason = fmt.Sprintf("Ideal gap of %s after the last meal at %s",
			formatGap(s.thresholds.IdealMealGapMin), models.FormatClock(s.lastMeal))
	}

	switch scenario {
	case ScenarioPreWorkout:
		start = math.Min(start, s.trainingStart-preWorkoutMinHours)
		t.Reason = fmt.Sprintf("Pre-workout meal 1-2 h before training at %s", models.FormatClock(s.trainingStart))
	case ScenarioPostWorkout:
		start = s.current
		t.Reason = fmt.Sprintf("Post-workout meal right after training at %s", models.FormatClock(s.trainingStart))
	default:
		deadline := s.sleep - sleepBufferHours
		if start > deadline {
			start = deadline - 1
			t.Reason = fmt.Sprintf("Last meal no later than %.0f h before sleep at %s",
				sleepBufferHours, models.FormatClock(s.sleep))
		}
	}
	start = math.Max(start, s.current)

	end := start + float64(r.settings.WindowMinutes)/60
	t.IdealStart = start
	t.IdealEnd = end
	t.Ideal = models.FormatWindow(start, end)
	return t
}

func formatGap(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d min", minutes)
}
