package recommender

import (
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	baseScenarioConfidence = 0.7
	maxScenarioConfidence  = 0.95
	fullHistoryDays        = 30.0
)

type Insights struct {
	PatternScores       map[models.PatternID]float64 `json:"patternScores"`
	PriorityMultipliers map[Scenario]float64         `json:"priorityMultipliers"`
	PhenotypeAdjusted   bool                         `json:"phenotypeAdjusted"`
}

// the pattern whose confidence backs each scenario
var scenarioPatterns = map[Scenario]models.PatternID{
	ScenarioProteinDeficit: models.PatternProteinSatiety,
	ScenarioStressEating:   models.PatternStressEating,
	ScenarioLateEvening:    models.PatternCircadianTiming,
	ScenarioPreWorkout:     models.PatternTrainingRecovery,
	ScenarioPostWorkout:    models.PatternTrainingRecovery,
}

// patternScores asks the analyzer for each meal pattern. Unavailable or
// unscored patterns are left out. Too little history yields no scores.
func (r *Recommender) patternScores(days []models.DayRecord, profile models.Profile) map[models.PatternID]models.PatternScore {
	scores := make(map[models.PatternID]models.PatternScore, len(models.MealPatterns))
	if r.patterns == nil || len(days) < r.settings.MinHistoryDays {
		return scores
	}
	for _, id := range models.MealPatterns {
		ps := r.patterns.Analyze(id, days, profile)
		if !ps.Scored() {
			continue
		}
		normalized := models.NormalizeScore(*ps.Score)
		ps.Score = &normalized
		scores[id] = ps
	}
	return scores
}

func normalizedScores(scores map[models.PatternID]models.PatternScore) map[models.PatternID]float64 {
	out := make(map[models.PatternID]float64, len(scores))
	for id, ps := range scores {
		out[id] = *ps.Score
	}
	return out
}

// dynamicConfidence blends scenario confidence, the mean pattern score and
// history length 40/30/30 and clamps to [0.5, 1]. Without enough history it
// returns the configured default.
func (r *Recommender) dynamicConfidence(scenario Scenario, scores map[models.PatternID]models.PatternScore, daysAvailable int) float64 {
	if daysAvailable < r.settings.MinHistoryDays {
		return r.settings.DefaultConfidence
	}

	scenarioConf := baseScenarioConfidence
	if id, ok := scenarioPatterns[scenario]; ok {
		if ps, ok := scores[id]; ok {
			conf := ps.Confidence
			if conf <= 0 || math.IsNaN(conf) {
				conf = baseScenarioConfidence
			}
			conf = stats.Clamp(conf, 0, 1)
			scenarioConf = math.Min(maxScenarioConfidence, baseScenarioConfidence+conf*0.2)
		}
	}

	patternAvg := 0.5
	if len(scores) > 0 {
		var sum float64
		for _, ps := range scores {
			sum += *ps.Score
		}
		patternAvg = sum / float64(len(scores))
	}

	dataQuality := math.Min(1, float64(daysAvailable)/fullHistoryDays)
	confidence := stats.Clamp(0.4*scenarioConf+0.3*patternAvg+0.3*dataQuality, 0.5, 1.0)

	utils.Log.WithFields(logrus.Fields{
		"scenario":     scenario,
		"scenarioConf": scenarioConf,
		"patternAvg":   patternAvg,
		"dataQuality":  dataQuality,
		"confidence":   confidence,
	}).Debug("dynamic confidence")
	return confidence
}

// priorityMultipliers weighs each scenario by what the pattern scores say
// about the user; 1.0 is neutral.
func priorityMultipliers(scores map[models.PatternID]models.PatternScore) map[Scenario]float64 {
	out := make(map[Scenario]float64, len(AllScenarios))
	for _, s := range AllScenarios {
		out[s] = 1.0
	}

	if ps, ok := scores[models.PatternProteinSatiety]; ok {
		switch {
		case *ps.Score < 0.5:
			out[ScenarioProteinDeficit] = 1.3
		case *ps.Score < 0.7:
			out[ScenarioProteinDeficit] = 1.15
		}
	}

	if ps, ok := scores[models.PatternStressEating]; ok {
		r := math.Abs(ps.Correlation)
		switch {
		case *ps.Score >= 0.7 || r > 0.5:
			out[ScenarioStressEating] = 1.25
		case *ps.Score >= 0.5 || r > 0.3:
			out[ScenarioStressEating] = 1.1
		}
	}

	if ps, ok := scores[models.PatternCircadianTiming]; ok && *ps.Score < 0.5 {
		out[ScenarioLateEvening] = 1.2
	}

	if ps, ok := scores[models.PatternTrainingRecovery]; ok && *ps.Score < 0.6 {
		out[ScenarioPreWorkout] = 1.15
		out[ScenarioPostWorkout] = 1.15
	}
	return out
}
