package snapshot

import "github.com/chrisdamba/foodinsights/internal/models"

// StaticPatterns answers pattern queries from precomputed scores.
type StaticPatterns map[models.PatternID]models.PatternScore

func (p StaticPatterns) Analyze(id models.PatternID, _ []models.DayRecord, _ models.Profile) models.PatternScore {
	return p[id]
}

type StaticThresholds models.AdaptiveThresholds

func (t StaticThresholds) Thresholds(_ []models.DayRecord, _ models.Profile) models.AdaptiveThresholds {
	return models.AdaptiveThresholds(t)
}

type StaticPhenotype struct {
	Phenotype models.Phenotype
	Detected  bool
}

func (p StaticPhenotype) Detection() (models.Phenotype, bool) {
	return p.Phenotype, p.Detected
}
