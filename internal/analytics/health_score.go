// Package analytics turns externally scored patterns and day history into a
// goal-aware health score, what-if projections, a weight forecast and a
// weekly summary.
package analytics

import (
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/sirupsen/logrus"
)

type GoalMode string

const (
	GoalDeficit     GoalMode = "deficit"
	GoalBulk        GoalMode = "bulk"
	GoalMaintenance GoalMode = "maintenance"
)

type Category string

const (
	CategoryNutrition  Category = "nutrition"
	CategoryTiming     Category = "timing"
	CategoryActivity   Category = "activity"
	CategoryRecovery   Category = "recovery"
	CategoryMetabolism Category = "metabolism"
)

var AllCategories = []Category{
	CategoryNutrition,
	CategoryTiming,
	CategoryActivity,
	CategoryRecovery,
	CategoryMetabolism,
}

var categoryLabels = map[Category]string{
	CategoryNutrition:  "Nutrition",
	CategoryTiming:     "Timing",
	CategoryActivity:   "Activity",
	CategoryRecovery:   "Recovery",
	CategoryMetabolism: "Metabolism",
}

type Weights map[Category]float64

// GoalWeights sum to 1.0 for every goal mode.
var GoalWeights = map[GoalMode]Weights{
	GoalDeficit: {
		CategoryNutrition:  0.25,
		CategoryTiming:     0.30,
		CategoryActivity:   0.20,
		CategoryRecovery:   0.15,
		CategoryMetabolism: 0.10,
	},
	GoalBulk: {
		CategoryNutrition:  0.40,
		CategoryTiming:     0.20,
		CategoryActivity:   0.25,
		CategoryRecovery:   0.10,
		CategoryMetabolism: 0.05,
	},
	GoalMaintenance: {
		CategoryNutrition:  0.35,
		CategoryTiming:     0.25,
		CategoryActivity:   0.20,
		CategoryRecovery:   0.15,
		CategoryMetabolism: 0.05,
	},
}

// PatternCategories maps each known pattern to the category it scores into.
// Patterns missing from the table are ignored by the health score.
var PatternCategories = map[models.PatternID]Category{
	models.PatternMealQuality:          CategoryNutrition,
	models.PatternNutritionQuality:     CategoryNutrition,
	models.PatternProteinSatiety:       CategoryNutrition,
	models.PatternFiberRegularity:      CategoryNutrition,
	models.PatternGutHealth:            CategoryNutrition,
	models.PatternHydration:            CategoryNutrition,
	models.PatternMicronutrientRadar:   CategoryNutrition,
	models.PatternOmegaBalancer:        CategoryNutrition,
	models.PatternNovaQuality:          CategoryNutrition,
	models.PatternVitaminDefense:       CategoryNutrition,
	models.PatternProteinDistribution:  CategoryNutrition,
	models.PatternNutrientDensity:      CategoryNutrition,
	models.PatternMealTiming:           CategoryTiming,
	models.PatternWaveOverlap:          CategoryTiming,
	models.PatternLateEating:           CategoryTiming,
	models.PatternCircadian:            CategoryTiming,
	models.PatternNutrientTiming:       CategoryTiming,
	models.PatternWeekendEffect:        CategoryTiming,
	models.PatternTrainingKcal:         CategoryActivity,
	models.PatternStepsWeight:          CategoryActivity,
	models.PatternNeatActivity:         CategoryActivity,
	models.PatternTrainingRecovery:     CategoryActivity,
	models.PatternTrainingTypeMatch:    CategoryActivity,
	models.PatternSleepWeight:          CategoryRecovery,
	models.PatternSleepHunger:          CategoryRecovery,
	models.PatternStressEating:         CategoryRecovery,
	models.PatternMoodFood:             CategoryRecovery,
	models.PatternMoodTrajectory:       CategoryRecovery,
	models.PatternSleepQuality:         CategoryRecovery,
	models.PatternWellbeingCorrelation: CategoryRecovery,
	models.PatternCycleImpact:          CategoryRecovery,
	models.PatternAntioxidantDefense:   CategoryRecovery,
	models.PatternBoneHealth:           CategoryRecovery,
	models.PatternElectrolytes:         CategoryRecovery,
	models.PatternInsulinSensitivity:   CategoryMetabolism,
	models.PatternBodyComposition:      CategoryMetabolism,
	models.PatternHeartHealth:          CategoryMetabolism,
	models.PatternHypertrophy:          CategoryMetabolism,
	models.PatternBComplexAnemia:       CategoryMetabolism,
	models.PatternGlycemicLoad:         CategoryMetabolism,
	models.PatternAddedSugarDependency: CategoryMetabolism,
}

type CategoryBreakdown struct {
	Score       *int     `json:"score"`
	Weight      float64  `json:"weight"`
	Label       string   `json:"label"`
	Patterns    int      `json:"patterns"`
	Reliability *float64 `json:"reliability"`
}

type HealthScoreDebug struct {
	GoalMode          GoalMode `json:"goalMode"`
	DeficitPct        float64  `json:"deficitPct"`
	Weights           Weights  `json:"weights"`
	AvailablePatterns int      `json:"patternCount"`
}

type HealthScore struct {
	Total      int                            `json:"total"`
	GoalMode   GoalMode                       `json:"goalMode"`
	Categories map[Category]*int              `json:"categories"`
	Breakdown  map[Category]CategoryBreakdown `json:"breakdown"`
	Debug      HealthScoreDebug               `json:"debug"`
}

// GoalModeFor derives the goal mode from the target deficit percentage.
func GoalModeFor(deficitPct float64) GoalMode {
	switch {
	case deficitPct <= -10:
		return GoalDeficit
	case deficitPct >= 10:
		return GoalBulk
	default:
		return GoalMaintenance
	}
}

// patternReliability is informational: it is reported per category but does
// not change the category mean.
func patternReliability(p models.PatternResult) float64 {
	conf := p.Confidence
	if math.IsNaN(conf) || math.IsInf(conf, 0) {
		conf = 0.5
	}
	if conf > 1 && conf <= 100 {
		conf /= 100
	}
	conf = stats.Clamp(conf, 0.15, 1)
	if p.IsPreliminary {
		conf = math.Min(conf, 0.55)
	}
	if p.RequiredDataPoints > 0 {
		conf *= stats.Clamp(float64(p.DataPoints)/float64(p.RequiredDataPoints), 0.25, 1)
	}
	return stats.Clamp(conf, 0.1, 1)
}

// CalculateHealthScore aggregates available pattern scores into a 0-100 total
// using the weights of the profile's goal mode. Categories without data are
// null and drop out of the weighted mean.
func CalculateHealthScore(patterns []models.PatternResult, profile models.Profile) HealthScore {
	deficitPct := profile.DeficitPctTarget.Float64()
	mode := GoalModeFor(deficitPct)
	weights := GoalWeights[mode]

	buckets := make(map[Category][]float64, len(AllCategories))
	reliability := make(map[Category][]float64, len(AllCategories))
	available := 0
	for _, p := range patterns {
		if p.Available {
			available++
		}
		if !p.Scored() {
			continue
		}
		cat, ok := PatternCategories[p.Pattern]
		if !ok {
			continue
		}
		buckets[cat] = append(buckets[cat], *p.Score)
		reliability[cat] = append(reliability[cat], patternReliability(p))
	}

	res := HealthScore{
		GoalMode:   mode,
		Categories: make(map[Category]*int, len(AllCategories)),
		Breakdown:  make(map[Category]CategoryBreakdown, len(AllCategories)),
		Debug: HealthScoreDebug{
			GoalMode:          mode,
			DeficitPct:        deficitPct,
			Weights:           weights,
			AvailablePatterns: available,
		},
	}

	var weightedSum, presentWeight float64
	for _, cat := range AllCategories {
		bd := CategoryBreakdown{
			Weight:   weights[cat],
			Label:    categoryLabels[cat],
			Patterns: len(buckets[cat]),
		}
		if len(buckets[cat]) == 0 {
			res.Categories[cat] = nil
			res.Breakdown[cat] = bd
			continue
		}
		mean := stats.Average(buckets[cat])
		rounded := int(stats.RoundHalfUp(mean))
		rel := stats.RoundTo(stats.Average(reliability[cat]), 2)
		bd.Score = &rounded
		bd.Reliability = &rel
		res.Categories[cat] = &rounded
		res.Breakdown[cat] = bd

		weightedSum += mean * weights[cat]
		presentWeight += weights[cat]
	}

	if presentWeight > 0 {
		res.Total = int(stats.Clamp(stats.RoundHalfUp(weightedSum/presentWeight), 0, 100))
	}

	utils.Log.WithFields(logrus.Fields{
		"goalMode": mode,
		"total":    res.Total,
		"patterns": available,
	}).Debug("health score calculated")
	return res
}
