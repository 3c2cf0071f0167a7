package recommender

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
)

// PatternAnalyzer scores one behavioural pattern over the day history.
type PatternAnalyzer interface {
	Analyze(pattern models.PatternID, days []models.DayRecord, profile models.Profile) models.PatternScore
}

// ThresholdProvider derives per-user timing thresholds from history.
type ThresholdProvider interface {
	Thresholds(days []models.DayRecord, profile models.Profile) models.AdaptiveThresholds
}

// PhenotypeDetector reports the detected phenotype; ok is false when
// nothing has been detected yet.
type PhenotypeDetector interface {
	Detection() (phenotype models.Phenotype, ok bool)
}

type Option func(*Recommender)

func WithPatterns(p PatternAnalyzer) Option {
	return func(r *Recommender) { r.patterns = p }
}

func WithThresholds(t ThresholdProvider) Option {
	return func(r *Recommender) { r.thresholds = t }
}

func WithPhenotype(p PhenotypeDetector) Option {
	return func(r *Recommender) { r.phenotype = p }
}

// WithClock sets the clock used when the context carries no current time.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) { r.now = now }
}
