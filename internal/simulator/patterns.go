package simulator

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
)

// EatingPattern describes when a simulated user usually eats.
type EatingPattern struct {
	Name         string
	WeekdayHours []float64
	WeekendHours []float64
	SnackHour    float64
	SnackChance  float64
	SkipChance   float64
	JitterHours  float64
}

var EatingPatterns = map[string]EatingPattern{
	"early_bird": {
		Name:         "early_bird",
		WeekdayHours: []float64{7, 12, 18},
		WeekendHours: []float64{8, 13, 18.5},
		SnackHour:    15.5,
		SnackChance:  0.3,
		SkipChance:   0.03,
		JitterHours:  0.3,
	},
	"standard": {
		Name:         "standard",
		WeekdayHours: []float64{8, 13, 19},
		WeekendHours: []float64{9.5, 14, 19.5},
		SnackHour:    16,
		SnackChance:  0.4,
		SkipChance:   0.05,
		JitterHours:  0.4,
	},
	"night_owl": {
		Name:         "night_owl",
		WeekdayHours: []float64{10, 14.5, 20.5},
		WeekendHours: []float64{11.5, 16, 21.5},
		SnackHour:    22.5,
		SnackChance:  0.5,
		SkipChance:   0.08,
		JitterHours:  0.5,
	},
}

// PatternNames returns the eating pattern names in a stable order.
func PatternNames() []string {
	names := make([]string, 0, len(EatingPatterns))
	for name := range EatingPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MealHours picks the day's meal times, jittered and sorted, within [5, 23.75].
func (p EatingPattern) MealHours(rng *rand.Rand, date time.Time) []float64 {
	base := p.WeekdayHours
	if isWeekend(date) {
		base = p.WeekendHours
	}
	hours := make([]float64, 0, len(base)+1)
	for _, h := range base {
		hours = append(hours, jitter(rng, h, p.JitterHours))
	}
	if chance(rng, p.SnackChance) {
		hours = append(hours, jitter(rng, p.SnackHour, p.JitterHours))
	}
	sort.Float64s(hours)
	return hours
}

func jitter(rng *rand.Rand, hour, std float64) float64 {
	h := normalClamped(rng, hour, std, 5, 23.75)
	return math.Round(h*4) / 4
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// intakeMultiplier scales the day's intake: weekends and Friday evenings run high.
func intakeMultiplier(date time.Time) float64 {
	multiplier := 1.0
	if isWeekend(date) {
		multiplier *= 1.12
	}
	if date.Weekday() == time.Friday {
		multiplier *= 1.05
	}
	return multiplier
}

// dayScore grades a day by its intake/target ratio zone.
func dayScore(rng *rand.Rand, ratio float64) float64 {
	var lo, hi float64
	switch analytics.DefaultRatioZones.Zone(ratio).ID {
	case "perfect":
		lo, hi = 82, 98
	case "good":
		lo, hi = 68, 84
	case "low", "over":
		lo, hi = 48, 68
	default:
		lo, hi = 20, 45
	}
	return math.Round(lo + rng.Float64()*(hi-lo))
}
