// Package snapshot reads a user's history, profile, scored patterns,
// recommendation context and precomputed collaborator outputs from a single
// JSON document.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/recommender"
	"github.com/tidwall/gjson"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Snapshot struct {
	UserID   string                        `json:"userId"`
	Profile  models.Profile                `json:"profile"`
	Days     []models.DayRecord            `json:"days"`
	Patterns []models.PatternResult        `json:"patterns,omitempty"`
	Context  *models.RecommendationContext `json:"context,omitempty"`

	// collaborator outputs; nil when the section is absent
	PatternScores StaticPatterns    `json:"-"`
	Thresholds    *StaticThresholds `json:"-"`
	Phenotype     *StaticPhenotype  `json:"-"`
}

func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidSnapshot)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	collab := gjson.GetBytes(data, "collaborators")
	if scores := collab.Get("patternScores"); scores.IsObject() {
		s.PatternScores = parsePatternScores(scores)
	} else if len(s.Patterns) > 0 {
		s.PatternScores = patternScoresFrom(s.Patterns)
	}
	if th := collab.Get("thresholds"); th.IsObject() {
		s.Thresholds = &StaticThresholds{
			LateEatingHour:  th.Get("lateEatingHour").Float(),
			IdealMealGapMin: int(th.Get("idealMealGapMin").Int()),
			Source:          th.Get("source").String(),
			Confidence:      th.Get("confidence").Float(),
		}
	}
	if ph := collab.Get("phenotype"); ph.IsObject() {
		s.Phenotype = &StaticPhenotype{
			Phenotype: models.Phenotype{
				Metabolic:  ph.Get("metabolic").String(),
				Circadian:  ph.Get("circadian").String(),
				Satiety:    ph.Get("satiety").String(),
				Confidence: ph.Get("confidence").Float(),
			},
			Detected: ph.Get("detected").Bool(),
		}
	}
	return &s, nil
}

// parsePatternScores accepts scores as numbers or numeric strings on either
// scale.
func parsePatternScores(section gjson.Result) StaticPatterns {
	out := make(StaticPatterns)
	section.ForEach(func(key, value gjson.Result) bool {
		available := value.Get("available")
		ps := models.PatternScore{
			Available:   !available.Exists() || available.Bool(),
			Confidence:  value.Get("confidence").Float(),
			Correlation: value.Get("correlation").Float(),
		}
		if score := value.Get("score"); score.Exists() && score.Type != gjson.Null {
			v := score.Float()
			ps.Score = &v
		}
		out[models.PatternID(key.String())] = ps
		return true
	})
	return out
}

func patternScoresFrom(patterns []models.PatternResult) StaticPatterns {
	out := make(StaticPatterns)
	for _, p := range patterns {
		if !p.Scored() {
			continue
		}
		out[p.Pattern] = models.PatternScore{
			Available:   true,
			Score:       p.Score,
			Confidence:  p.Confidence,
			Correlation: p.Correlation,
		}
	}
	return out
}

// Options wires every collaborator section present in the snapshot.
func (s *Snapshot) Options() []recommender.Option {
	var opts []recommender.Option
	if s.PatternScores != nil {
		opts = append(opts, recommender.WithPatterns(s.PatternScores))
	}
	if s.Thresholds != nil {
		opts = append(opts, recommender.WithThresholds(*s.Thresholds))
	}
	if s.Phenotype != nil {
		opts = append(opts, recommender.WithPhenotype(*s.Phenotype))
	}
	return opts
}

func (s *Snapshot) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (s *Snapshot) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot %s: %w", path, err)
	}
	return nil
}
