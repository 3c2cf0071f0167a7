package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/recommender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "userId": "u1",
  "profile": {"norm": {"kcal": 1800, "prot": 110, "carb": 180}, "deficitPctTarget": "-15", "weightGoal": 70},
  "days": [
    {"date": "2024-03-01", "meals": [{"time": "08:30", "kcal": 450, "protein": 30}], "weightMorning": 74.2},
    {"date": "2024-03-02", "meals": [], "cycleDay": 2}
  ],
  "patterns": [
    {"pattern": "meal_quality", "available": true, "score": 72, "confidence": 0.8}
  ],
  "context": {"currentTime": "21:15", "dayEaten": {"kcal": 900, "protein": 70}},
  "collaborators": {
    "patternScores": {
      "protein_satiety": {"available": true, "score": "65", "confidence": 0.7},
      "stress_eating": {"score": 0.4, "correlation": -0.35}
    },
    "thresholds": {"lateEatingHour": 21.5, "idealMealGapMin": 200, "source": "full"},
    "phenotype": {"detected": true, "metabolic": "insulin_resistant", "satiety": "low_satiety"}
  }
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(fixture))
	require.NoError(t, err)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, -15.0, s.Profile.DeficitPctTarget.Float64())
	assert.Equal(t, 1800.0, s.Profile.Norm.Kcal)
	require.Len(t, s.Days, 2)
	assert.Equal(t, 74.2, s.Days[0].WeightMorning)
	require.NotNil(t, s.Days[1].CycleDay)
	assert.Equal(t, 2, *s.Days[1].CycleDay)
	require.Len(t, s.Patterns, 1)
	require.NotNil(t, s.Context)
	assert.Equal(t, "21:15", s.Context.CurrentTime)

	require.Len(t, s.PatternScores, 2)
	require.NotNil(t, s.PatternScores[models.PatternProteinSatiety].Score)
	assert.Equal(t, 65.0, *s.PatternScores[models.PatternProteinSatiety].Score)
	assert.True(t, s.PatternScores[models.PatternStressEating].Available)
	assert.Equal(t, -0.35, s.PatternScores[models.PatternStressEating].Correlation)

	require.NotNil(t, s.Thresholds)
	assert.Equal(t, 21.5, s.Thresholds.LateEatingHour)
	assert.Equal(t, 200, s.Thresholds.IdealMealGapMin)

	require.NotNil(t, s.Phenotype)
	p, ok := s.Phenotype.Detection()
	assert.True(t, ok)
	assert.Equal(t, models.MetabolicInsulinResistant, p.Metabolic)
	assert.Equal(t, models.SatietyLow, p.Satiety)

	assert.Len(t, s.Options(), 3)
}

func TestParseWithoutCollaborators(t *testing.T) {
	s, err := Parse([]byte(`{"days": [], "patterns": [
		{"pattern": "protein_satiety", "available": true, "score": 40, "confidence": 0.6},
		{"pattern": "stress_eating", "available": false, "score": 90}
	]}`))
	require.NoError(t, err)
	assert.Nil(t, s.Thresholds)
	assert.Nil(t, s.Phenotype)
	assert.Nil(t, s.Context)

	// scores fall back to the scored patterns
	require.Len(t, s.PatternScores, 1)
	require.NotNil(t, s.PatternScores[models.PatternProteinSatiety].Score)
	assert.Equal(t, 40.0, *s.PatternScores[models.PatternProteinSatiety].Score)
	assert.Len(t, s.Options(), 1)

	s, err = Parse([]byte(`{"days": []}`))
	require.NoError(t, err)
	assert.Nil(t, s.PatternScores)
	assert.Empty(t, s.Options())
}

func TestParseNullPatternScore(t *testing.T) {
	s, err := Parse([]byte(`{"days": [], "collaborators": {"patternScores": {
		"protein_satiety": {"available": true, "score": 80},
		"stress_eating": {"available": true, "score": null},
		"circadian_timing": {"available": true}
	}}}`))
	require.NoError(t, err)
	require.Len(t, s.PatternScores, 3)

	assert.True(t, s.PatternScores[models.PatternProteinSatiety].Scored())
	assert.Nil(t, s.PatternScores[models.PatternStressEating].Score)
	assert.False(t, s.PatternScores[models.PatternStressEating].Scored())
	assert.False(t, s.PatternScores[models.PatternCircadianTiming].Scored())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"days": [`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = Parse([]byte(`{"days": "nope"}`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSaveAndLoad(t *testing.T) {
	s, err := Parse([]byte(fixture))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Days, loaded.Days)
	assert.Equal(t, s.Profile, loaded.Profile)
	// collaborator outputs are input-only
	assert.Nil(t, loaded.Thresholds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveReportsErrors(t *testing.T) {
	s, err := Parse([]byte(fixture))
	require.NoError(t, err)

	err = s.Save(filepath.Join(t.TempDir(), "missing", "snapshot.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, s.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n', "encoder output flushed")
}

func TestSnapshotDrivesRecommender(t *testing.T) {
	s, err := Parse([]byte(fixture))
	require.NoError(t, err)

	r := recommender.New(recommender.DefaultSettings(), s.Options()...)
	rec := r.Recommend(s.Context, s.Profile, s.Days)
	require.True(t, rec.Available)
	// 21:15 is before the adaptive 21:30 late hour
	assert.NotEqual(t, recommender.ScenarioLateEvening, rec.Scenario)
	require.NotNil(t, rec.Insights)
	assert.True(t, rec.Insights.PhenotypeAdjusted)
}
