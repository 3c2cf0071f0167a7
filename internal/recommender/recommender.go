// Package recommender picks the next meal for the current moment: it
// classifies the situation into one of eight scenarios, sets a timing window
// and macro targets, and blends a confidence score from the optional pattern,
// threshold and phenotype collaborators.
package recommender

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	Version = "2.1.0"

	MethodRuleBased         = "rule_based"
	MethodRuleBasedPatterns = "rule_based+patterns"
)

type Recommendation struct {
	Available   bool         `json:"available"`
	Scenario    Scenario     `json:"scenario,omitempty"`
	Timing      *Timing      `json:"timing,omitempty"`
	Macros      *MacroTarget `json:"macros,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Reasoning   []string     `json:"reasoning,omitempty"`
	Confidence  float64      `json:"confidence"`
	Insights    *Insights    `json:"insights,omitempty"`
	Method      string       `json:"method,omitempty"`
	Version     string       `json:"version"`
	Error       string       `json:"error,omitempty"`
}

type Recommender struct {
	settings   models.RecommenderConfig
	patterns   PatternAnalyzer
	thresholds ThresholdProvider
	phenotype  PhenotypeDetector
	now        func() time.Time
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() models.RecommenderConfig {
	return models.RecommenderConfig{
		DefaultConfidence: 0.75,
		WindowMinutes:     60,
		StressThreshold:   4,
		MoodThreshold:     2,
		MinHistoryDays:    7,
		LateEatingHour:    models.DefaultLateEatingHour,
		IdealMealGapMin:   models.DefaultIdealMealGapMin,
	}
}

// New builds a recommender. Zero-valued settings fall back to
// DefaultSettings field by field.
func New(settings models.RecommenderConfig, opts ...Option) *Recommender {
	def := DefaultSettings()
	if settings.DefaultConfidence <= 0 || settings.DefaultConfidence > 1 {
		settings.DefaultConfidence = def.DefaultConfidence
	}
	if settings.WindowMinutes <= 0 {
		settings.WindowMinutes = def.WindowMinutes
	}
	if settings.StressThreshold <= 0 {
		settings.StressThreshold = def.StressThreshold
	}
	if settings.MoodThreshold <= 0 {
		settings.MoodThreshold = def.MoodThreshold
	}
	if settings.MinHistoryDays <= 0 {
		settings.MinHistoryDays = def.MinHistoryDays
	}
	if settings.LateEatingHour <= 0 || settings.LateEatingHour > 24 {
		settings.LateEatingHour = def.LateEatingHour
	}
	if settings.IdealMealGapMin <= 0 {
		settings.IdealMealGapMin = def.IdealMealGapMin
	}

	r := &Recommender{settings: settings, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend computes the next-meal recommendation. It only reports
// Available=false when rc is nil; every missing collaborator or field falls
// back to a default.
func (r *Recommender) Recommend(rc *models.RecommendationContext, profile models.Profile, days []models.DayRecord) Recommendation {
	if rc == nil {
		return Recommendation{
			Available: false,
			Version:   Version,
			Error:     "missing context: a recommendation context is required",
		}
	}

	state := r.resolveState(rc, profile, days)
	scenario := r.classify(state)
	timing := r.computeTiming(state, scenario)
	macros, phenotypeAdjusted := r.computeMacros(state, scenario)

	rec := Recommendation{
		Available:   true,
		Scenario:    scenario,
		Timing:      &timing,
		Macros:      &macros,
		Suggestions: suggestionsFor(scenario, macros),
		Reasoning:   reasoningFor(scenario, state, timing, macros),
		Confidence:  r.settings.DefaultConfidence,
		Method:      MethodRuleBased,
		Version:     Version,
	}

	if r.patterns != nil {
		scores := r.patternScores(days, profile)
		rec.Confidence = r.dynamicConfidence(scenario, scores, len(days))
		rec.Insights = &Insights{
			PatternScores:       normalizedScores(scores),
			PriorityMultipliers: priorityMultipliers(scores),
			PhenotypeAdjusted:   phenotypeAdjusted,
		}
		if len(scores) > 0 {
			rec.Method = MethodRuleBasedPatterns
		}
	}

	utils.Log.WithFields(logrus.Fields{
		"scenario":   scenario,
		"ideal":      timing.Ideal,
		"kcal":       macros.Kcal,
		"confidence": rec.Confidence,
		"method":     rec.Method,
	}).Debug("meal recommendation generated")
	return rec
}

func (r *Recommender) resolveState(rc *models.RecommendationContext, profile models.Profile, days []models.DayRecord) dayState {
	s := dayState{
		target: resolveTargets(rc.DayTarget, profile),
		eaten:  rc.DayEaten,
		stress: rc.Stress,
		mood:   rc.Mood,
	}

	current, err := models.ParseClock(rc.CurrentTime)
	if err != nil {
		if rc.CurrentTime != "" {
			utils.Log.WithError(err).Debug("unusable current time, using clock")
		}
		current = models.ClockOf(r.now())
	}
	s.current = current

	sleepTarget := rc.SleepTarget
	if sleepTarget == "" {
		sleepTarget = models.DefaultSleepTarget
	}
	sleep, err := models.ParseClock(sleepTarget)
	if err != nil {
		sleep, _ = models.ParseClock(models.DefaultSleepTarget)
	}
	s.sleep = bedtimeAfter(current, sleep)

	if rc.HasLastMeal() {
		if last, err := models.ParseClock(rc.LastMeal.Time); err == nil {
			s.lastMeal = last
			s.hasLastMeal = true
		}
	}

	if rc.Training != nil && rc.Training.Time != "" {
		if start, err := models.ParseClock(rc.Training.Time); err == nil {
			s.training = rc.Training
			s.trainingStart = start
			s.trainingEnd = start + float64(rc.Training.DurationMin)/60
			s.hasTraining = true
		}
	}

	s.thresholds = r.resolveThresholds(days, profile)
	return s
}

func (r *Recommender) resolveThresholds(days []models.DayRecord, profile models.Profile) models.AdaptiveThresholds {
	t := models.AdaptiveThresholds{
		LateEatingHour:  r.settings.LateEatingHour,
		IdealMealGapMin: r.settings.IdealMealGapMin,
		Source:          "default",
	}
	if r.thresholds == nil {
		return t
	}
	got := r.thresholds.Thresholds(days, profile)
	if got.LateEatingHour > 0 && got.LateEatingHour <= 24 {
		t.LateEatingHour = got.LateEatingHour
	}
	if got.IdealMealGapMin > 0 {
		t.IdealMealGapMin = got.IdealMealGapMin
	}
	if got.Source != "" {
		t.Source = got.Source
	}
	t.Confidence = got.Confidence
	return t
}

// resolveTargets fills day targets from the context, then the profile norm,
// then the profile optimum, then fixed defaults.
func resolveTargets(target models.Macros, profile models.Profile) models.Macros {
	if target.Kcal <= 0 {
		switch {
		case profile.Norm.Kcal > 0:
			target.Kcal = profile.Norm.Kcal
		case profile.Optimum > 0:
			target.Kcal = profile.Optimum
		default:
			target.Kcal = models.DefaultDayKcal
		}
	}
	if target.Protein <= 0 {
		target.Protein = models.DefaultDayProtein
		if profile.Norm.Prot > 0 {
			target.Protein = profile.Norm.Prot
		}
	}
	if target.Carbs <= 0 {
		target.Carbs = models.DefaultDayCarbs
		if profile.Norm.Carb > 0 {
			target.Carbs = profile.Norm.Carb
		}
	}
	if target.Fat <= 0 {
		if profile.Norm.Fat > 0 {
			target.Fat = profile.Norm.Fat
		} else {
			target.Fat = target.Kcal * 0.3 / 9
		}
	}
	return target
}
