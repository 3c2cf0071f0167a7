package recommender

import (
	"fmt"
	"testing"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatterns map[models.PatternID]models.PatternScore

func (f fakePatterns) Analyze(id models.PatternID, _ []models.DayRecord, _ models.Profile) models.PatternScore {
	return f[id]
}

type fakeThresholds models.AdaptiveThresholds

func (f fakeThresholds) Thresholds(_ []models.DayRecord, _ models.Profile) models.AdaptiveThresholds {
	return models.AdaptiveThresholds(f)
}

type fakePhenotype struct {
	phenotype models.Phenotype
	ok        bool
}

func (f fakePhenotype) Detection() (models.Phenotype, bool) {
	return f.phenotype, f.ok
}

// ctxAt builds a context against a 2000 kcal / 120 g protein day.
func ctxAt(current string, eatenKcal, eatenProtein float64) *models.RecommendationContext {
	return &models.RecommendationContext{
		CurrentTime: current,
		DayTarget:   models.Macros{Kcal: 2000, Protein: 120},
		DayEaten:    models.Macros{Kcal: eatenKcal, Protein: eatenProtein},
	}
}

func score(v float64) *float64 {
	return &v
}

func history(n int) []models.DayRecord {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	days := make([]models.DayRecord, n)
	for i := range days {
		days[i] = models.DayRecord{Date: base.AddDate(0, 0, i).Format(models.DateLayout)}
	}
	return days
}

func proteinShare(m *MacroTarget) float64 {
	return float64(m.Protein) / float64(m.Protein+m.Carbs)
}

func TestRecommendMissingContext(t *testing.T) {
	rec := New(DefaultSettings()).Recommend(nil, models.Profile{}, nil)
	assert.False(t, rec.Available)
	assert.Contains(t, rec.Error, "missing context")
	assert.Equal(t, Version, rec.Version)
	assert.Nil(t, rec.Timing)
	assert.Nil(t, rec.Macros)
}

func TestScenarioBudgetBoundaries(t *testing.T) {
	r := New(DefaultSettings())
	tests := []struct {
		name      string
		remaining float64
		want      Scenario
	}{
		{"remaining 30", 30, ScenarioGoalReached},
		{"remaining 49", 49, ScenarioGoalReached},
		{"over budget", -200, ScenarioGoalReached},
		{"remaining 50", 50, ScenarioLightSnack},
		{"remaining 149", 149, ScenarioLightSnack},
		{"remaining 150", 150, ScenarioLightSnack},
		{"remaining 151", 151, ScenarioBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eaten := 2000 - tt.remaining
			rec := r.Recommend(ctxAt("14:00", eaten, 120*eaten/2000), models.Profile{}, nil)
			require.True(t, rec.Available)
			assert.Equal(t, tt.want, rec.Scenario)
		})
	}
}

func TestGoalReachedMacros(t *testing.T) {
	rec := New(DefaultSettings()).Recommend(ctxAt("14:00", 1970, 100), models.Profile{}, nil)
	assert.Equal(t, ScenarioGoalReached, rec.Scenario)
	assert.Equal(t, 0, rec.Macros.Kcal)
	require.Len(t, rec.Suggestions, 1)
	assert.Equal(t, "Water", rec.Suggestions[0].Product)
}

func TestLightSnackMacros(t *testing.T) {
	rec := New(DefaultSettings()).Recommend(ctxAt("14:00", 1851, 110), models.Profile{}, nil)
	assert.Equal(t, ScenarioLightSnack, rec.Scenario)
	assert.LessOrEqual(t, rec.Macros.Kcal, 150)
	assert.NotEmpty(t, rec.Suggestions)
}

func TestLateEveningBoundaryIsInclusive(t *testing.T) {
	r := New(DefaultSettings())

	rec := r.Recommend(ctxAt("21:00", 1000, 60), models.Profile{}, nil)
	assert.Equal(t, ScenarioLateEvening, rec.Scenario)
	assert.LessOrEqual(t, rec.Macros.Kcal, 200)
	assert.Greater(t, proteinShare(rec.Macros), 0.5)

	rec = r.Recommend(ctxAt("20:59", 1000, 60), models.Profile{}, nil)
	assert.Equal(t, ScenarioBalanced, rec.Scenario)
}

func TestProteinDeficitBeforeLateHour(t *testing.T) {
	// 30 g eaten against 72 g expected for 1200 kcal: ratio 0.417
	rec := New(DefaultSettings()).Recommend(ctxAt("20:30", 1200, 30), models.Profile{}, nil)
	assert.Equal(t, ScenarioProteinDeficit, rec.Scenario)
	assert.Greater(t, proteinShare(rec.Macros), 0.45)

	ratio, ok := ProteinPacing(models.Macros{Kcal: 2000, Protein: 120}, models.Macros{Kcal: 1200, Protein: 30})
	require.True(t, ok)
	assert.InDelta(t, 0.417, ratio, 0.001)
}

func TestProteinPacingNeedsEatenCalories(t *testing.T) {
	_, ok := ProteinPacing(models.Macros{Kcal: 2000, Protein: 120}, models.Macros{})
	assert.False(t, ok)

	rec := New(DefaultSettings()).Recommend(ctxAt("09:00", 0, 0), models.Profile{}, nil)
	assert.Equal(t, ScenarioBalanced, rec.Scenario)
}

func TestGoalReachedBeatsLateEvening(t *testing.T) {
	rec := New(DefaultSettings()).Recommend(ctxAt("22:00", 1980, 100), models.Profile{}, nil)
	assert.Equal(t, ScenarioGoalReached, rec.Scenario)
}

func TestPreWorkoutBeatsLateEvening(t *testing.T) {
	rc := ctxAt("21:30", 1000, 60)
	rc.Training = &models.Training{Type: "strength", Time: "23:00"}

	rec := New(DefaultSettings()).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioPreWorkout, rec.Scenario)
	assert.Greater(t, 1-proteinShare(rec.Macros), 0.5)
	assert.GreaterOrEqual(t, rec.Timing.IdealStart, 21.5)
	assert.LessOrEqual(t, rec.Timing.IdealStart, 22.0)
	assert.Contains(t, rec.Reasoning, "Training at 23:00 (strength)")
}

func TestPostWorkoutBeatsLateEvening(t *testing.T) {
	rc := ctxAt("21:30", 1000, 60)
	rc.Training = &models.Training{Type: "cardio", Time: "20:00", DurationMin: 60}

	rec := New(DefaultSettings()).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioPostWorkout, rec.Scenario)
	assert.GreaterOrEqual(t, rec.Macros.Protein, 25)
	assert.Equal(t, 21.5, rec.Timing.IdealStart)
}

func TestTrainingWindows(t *testing.T) {
	r := New(DefaultSettings())
	tests := []struct {
		current  string
		training models.Training
		want     Scenario
	}{
		{"17:00", models.Training{Time: "18:00"}, ScenarioPreWorkout},
		{"17:00", models.Training{Time: "19:00"}, ScenarioPreWorkout},
		{"17:00", models.Training{Time: "17:30"}, ScenarioBalanced},
		{"17:00", models.Training{Time: "19:30"}, ScenarioBalanced},
		{"14:00", models.Training{Time: "12:30", DurationMin: 60}, ScenarioPostWorkout},
		{"15:00", models.Training{Time: "12:00", DurationMin: 60}, ScenarioBalanced},
		{"12:30", models.Training{Time: "12:00", DurationMin: 60}, ScenarioBalanced},
		{"17:00", models.Training{Time: "bogus"}, ScenarioBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.current+" training "+tt.training.Time, func(t *testing.T) {
			rc := ctxAt(tt.current, 1000, 60)
			training := tt.training
			rc.Training = &training
			assert.Equal(t, tt.want, r.Recommend(rc, models.Profile{}, nil).Scenario)
		})
	}
}

func TestStressEating(t *testing.T) {
	r := New(DefaultSettings())

	rc := ctxAt("14:00", 800, 60)
	rc.Stress, rc.Mood = 4, 2
	rec := r.Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioStressEating, rec.Scenario)
	assert.LessOrEqual(t, rec.Macros.Kcal, 250)

	rc.Mood = 3
	assert.Equal(t, ScenarioBalanced, r.Recommend(rc, models.Profile{}, nil).Scenario)

	rc.Stress, rc.Mood = 0, 0
	assert.Equal(t, ScenarioBalanced, r.Recommend(rc, models.Profile{}, nil).Scenario)

	custom := New(models.RecommenderConfig{StressThreshold: 3, MoodThreshold: 3})
	rc.Stress, rc.Mood = 3, 3
	assert.Equal(t, ScenarioStressEating, custom.Recommend(rc, models.Profile{}, nil).Scenario)
}

func TestTimingWindow(t *testing.T) {
	r := New(DefaultSettings())
	tests := []struct {
		name     string
		current  string
		lastMeal string
		want     string
		start    float64
	}{
		{"first meal", "09:15", "", "09:15-10:15", 9.25},
		{"gap after last meal", "13:00", "12:00", "16:00-17:00", 16},
		{"gap already passed", "14:00", "08:00", "14:00-15:00", 14},
		{"sleep deadline", "19:30", "19:00", "19:30-20:30", 19.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := ctxAt(tt.current, 1000, 60)
			if tt.lastMeal != "" {
				rc.LastMeal = &models.LastMeal{Time: tt.lastMeal}
			}
			rec := r.Recommend(rc, models.Profile{}, nil)
			assert.Equal(t, tt.want, rec.Timing.Ideal)
			assert.InDelta(t, tt.start, rec.Timing.IdealStart, 1e-9)
			assert.NotEmpty(t, rec.Timing.Reason)
		})
	}

	rec := r.Recommend(ctxAt("09:15", 0, 0), models.Profile{}, nil)
	assert.Contains(t, rec.Timing.Reason, "First meal of day")

	rc := ctxAt("13:00", 1000, 60)
	rc.LastMeal = &models.LastMeal{Time: "11:30"}
	rec = r.Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, 1.5, rec.Timing.HoursSinceLastMeal)
}

func TestIdealStartNeverBeforeCurrentTime(t *testing.T) {
	r := New(DefaultSettings())
	lastMeals := []*models.LastMeal{nil, {}, {Time: "06:00"}, {Time: "12:00"}, {Time: "18:45"}, {Time: "23:30"}}
	eaten := []float64{0, 900, 1200, 1900, 1980, 2600}
	trainings := []*models.Training{nil, {Time: "18:00", DurationMin: 45}}

	for minutes := 0; minutes < 24*60; minutes += 30 {
		current := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		for _, lm := range lastMeals {
			for _, kcal := range eaten {
				for _, tr := range trainings {
					rc := ctxAt(current, kcal, 20)
					rc.LastMeal = lm
					rc.Training = tr
					rec := r.Recommend(rc, models.Profile{}, nil)
					require.True(t, rec.Available)
					assert.GreaterOrEqual(t, rec.Timing.IdealStart, rec.Timing.CurrentTime, "current %s", current)
					assert.GreaterOrEqual(t, rec.Macros.Kcal, 0)
					assert.GreaterOrEqual(t, rec.Confidence, 0.5)
					assert.LessOrEqual(t, rec.Confidence, 1.0)
				}
			}
		}
	}
}

func TestEstimateRemainingMeals(t *testing.T) {
	tests := []struct {
		current, sleep float64
		gap            int
		want           int
	}{
		{19, 23, 240, 1},
		{13, 23, 240, 2},
		{7, 23, 180, 5},
		{22, 23, 240, 0},
		{23.5, 23, 240, 0},
		{20, 1, 240, 1},
		{10, 23, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v-%v-%d", tt.current, tt.sleep, tt.gap), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateRemainingMeals(tt.current, tt.sleep, tt.gap))
		})
	}
}

func TestLastMealOverride(t *testing.T) {
	r := New(DefaultSettings())

	// one meal left before 23:00 with 800 kcal to go
	rec := r.Recommend(ctxAt("19:00", 1200, 100), models.Profile{}, nil)
	assert.Equal(t, ScenarioBalanced, rec.Scenario)
	assert.Equal(t, 1, rec.Macros.RemainingMeals)
	assert.Equal(t, 720, rec.Macros.Kcal)
	assert.True(t, rec.Macros.LastMealBoost)
	assert.Contains(t, rec.Reasoning, "This is the last meal before sleep")

	// the late-evening ceiling survives the override
	rc := ctxAt("21:00", 1200, 100)
	rc.SleepTarget = "01:00"
	rec = r.Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioLateEvening, rec.Scenario)
	assert.Equal(t, 1, rec.Macros.RemainingMeals)
	assert.Equal(t, 200, rec.Macros.Kcal)

	// no override at exactly 300 kcal left
	rec = r.Recommend(ctxAt("19:00", 1700, 110), models.Profile{}, nil)
	assert.Equal(t, ScenarioBalanced, rec.Scenario)
	assert.Equal(t, 300, rec.Macros.Kcal)
	assert.False(t, rec.Macros.LastMealBoost)
}

func TestBalancedSplitsAcrossRemainingMeals(t *testing.T) {
	rc := ctxAt("08:00", 400, 30)
	rc.DayTarget.Carbs = 250
	rc.DayEaten.Carbs = 50
	rec := New(DefaultSettings()).Recommend(rc, models.Profile{}, nil)

	assert.Equal(t, ScenarioBalanced, rec.Scenario)
	// 15 h until 23:00 holds three 4 h gaps
	assert.Equal(t, 3, rec.Macros.RemainingMeals)
	assert.Equal(t, 533, rec.Macros.Kcal)
	assert.Equal(t, 30, rec.Macros.Protein)
	assert.Equal(t, 67, rec.Macros.Carbs)
	assert.Equal(t, "25-35", rec.Macros.ProteinRange)
	assert.Greater(t, rec.Macros.Kcal, 300)
	require.Len(t, rec.Suggestions, 2)
	assert.Equal(t, "Chicken breast", rec.Suggestions[0].Product)
	assert.Equal(t, "Brown rice", rec.Suggestions[1].Product)
}

func TestTargetsFallBackToProfile(t *testing.T) {
	rc := &models.RecommendationContext{
		CurrentTime: "14:00",
		DayEaten:    models.Macros{Kcal: 1500, Protein: 90},
	}
	profile := models.Profile{Norm: models.NutrientNorm{Kcal: 1600, Prot: 100}}
	rec := New(DefaultSettings()).Recommend(rc, profile, nil)
	assert.Equal(t, ScenarioLightSnack, rec.Scenario)
	assert.Equal(t, 100, rec.Macros.RemainingKcal)

	rec = New(DefaultSettings()).Recommend(rc, models.Profile{Optimum: 1540}, nil)
	assert.Equal(t, ScenarioGoalReached, rec.Scenario)
}

func TestAdaptiveThresholds(t *testing.T) {
	rc := ctxAt("20:00", 1000, 60)

	rec := New(DefaultSettings(), WithThresholds(fakeThresholds{LateEatingHour: 20, IdealMealGapMin: 180, Source: "full"})).
		Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioLateEvening, rec.Scenario)

	rec = New(DefaultSettings(), WithThresholds(fakeThresholds{})).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioBalanced, rec.Scenario)

	rc = ctxAt("13:00", 1000, 60)
	rc.LastMeal = &models.LastMeal{Time: "12:00"}
	rec = New(DefaultSettings(), WithThresholds(fakeThresholds{LateEatingHour: 21, IdealMealGapMin: 180})).
		Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, "15:00-16:00", rec.Timing.Ideal)
}

func TestConfidenceDefaults(t *testing.T) {
	rc := ctxAt("14:00", 800, 60)

	rec := New(DefaultSettings()).Recommend(rc, models.Profile{}, history(30))
	assert.Equal(t, 0.75, rec.Confidence)
	assert.Nil(t, rec.Insights)
	assert.Equal(t, MethodRuleBased, rec.Method)

	patterns := fakePatterns{models.PatternProteinSatiety: {Available: true, Score: score(90), Confidence: 0.9}}
	rec = New(DefaultSettings(), WithPatterns(patterns)).Recommend(rc, models.Profile{}, history(5))
	assert.Equal(t, 0.75, rec.Confidence)
	require.NotNil(t, rec.Insights)
	assert.Empty(t, rec.Insights.PatternScores)
	assert.Equal(t, MethodRuleBased, rec.Method)
}

func TestDynamicConfidence(t *testing.T) {
	patterns := fakePatterns{
		models.PatternProteinSatiety:   {Available: true, Score: score(80), Confidence: 0.9},
		models.PatternStressEating:     {Available: true, Score: score(0.6), Confidence: 0.5, Correlation: 0.2},
		models.PatternCircadianTiming:  {Available: true, Score: score(40), Confidence: 0.6},
		models.PatternTrainingRecovery: {Available: false, Score: score(10)},
	}
	r := New(DefaultSettings(), WithPatterns(patterns))

	rec := r.Recommend(ctxAt("14:00", 800, 60), models.Profile{}, history(30))
	assert.Equal(t, ScenarioBalanced, rec.Scenario)
	// 0.4*0.7 + 0.3*0.6 + 0.3*1.0
	assert.InDelta(t, 0.76, rec.Confidence, 1e-9)
	assert.Equal(t, MethodRuleBasedPatterns, rec.Method)

	require.NotNil(t, rec.Insights)
	assert.Len(t, rec.Insights.PatternScores, 3)
	assert.InDelta(t, 0.8, rec.Insights.PatternScores[models.PatternProteinSatiety], 1e-9)
	assert.InDelta(t, 0.4, rec.Insights.PatternScores[models.PatternCircadianTiming], 1e-9)
	assert.Equal(t, 1.0, rec.Insights.PriorityMultipliers[ScenarioProteinDeficit])
	assert.Equal(t, 1.1, rec.Insights.PriorityMultipliers[ScenarioStressEating])
	assert.Equal(t, 1.2, rec.Insights.PriorityMultipliers[ScenarioLateEvening])
	assert.Equal(t, 1.0, rec.Insights.PriorityMultipliers[ScenarioPreWorkout])
	assert.Len(t, rec.Insights.PriorityMultipliers, len(AllScenarios))
	assert.False(t, rec.Insights.PhenotypeAdjusted)

	// boosted by the protein-satiety confidence: min(0.95, 0.7 + 0.9*0.2)
	rec = r.Recommend(ctxAt("20:30", 1200, 30), models.Profile{}, history(30))
	assert.Equal(t, ScenarioProteinDeficit, rec.Scenario)
	assert.InDelta(t, 0.832, rec.Confidence, 1e-9)
}

func TestDynamicConfidenceBounds(t *testing.T) {
	perfect := fakePatterns{}
	weak := fakePatterns{}
	for _, id := range models.MealPatterns {
		perfect[id] = models.PatternScore{Available: true, Score: score(100), Confidence: 1}
		weak[id] = models.PatternScore{Available: true, Score: score(0), Confidence: 0.1}
	}

	rec := New(DefaultSettings(), WithPatterns(perfect)).Recommend(ctxAt("20:30", 1200, 30), models.Profile{}, history(60))
	assert.InDelta(t, 0.96, rec.Confidence, 1e-9)
	assert.Less(t, rec.Confidence, 1.0)

	rec = New(DefaultSettings(), WithPatterns(weak)).Recommend(ctxAt("14:00", 800, 60), models.Profile{}, history(7))
	assert.Equal(t, 0.5, rec.Confidence)
	assert.Equal(t, 1.3, rec.Insights.PriorityMultipliers[ScenarioProteinDeficit])
	assert.Equal(t, 1.15, rec.Insights.PriorityMultipliers[ScenarioPostWorkout])
}

func TestUnscoredPatternLeftOutOfConfidence(t *testing.T) {
	rc := ctxAt("14:00", 800, 60)
	scored := fakePatterns{
		models.PatternProteinSatiety: {Available: true, Score: score(80), Confidence: 0.9},
	}
	withNil := fakePatterns{
		models.PatternProteinSatiety: {Available: true, Score: score(80), Confidence: 0.9},
		models.PatternStressEating:   {Available: true, Confidence: 0.6},
	}

	base := New(DefaultSettings(), WithPatterns(scored)).Recommend(rc, models.Profile{}, history(30))
	rec := New(DefaultSettings(), WithPatterns(withNil)).Recommend(rc, models.Profile{}, history(30))

	// 0.4*0.7 + 0.3*0.8 + 0.3*1.0
	assert.InDelta(t, 0.82, base.Confidence, 1e-9)
	assert.Equal(t, base.Confidence, rec.Confidence)
	require.NotNil(t, rec.Insights)
	assert.Len(t, rec.Insights.PatternScores, 1)
	assert.NotContains(t, rec.Insights.PatternScores, models.PatternStressEating)
	assert.Equal(t, 1.0, rec.Insights.PriorityMultipliers[ScenarioStressEating])
}

func TestPhenotypeShift(t *testing.T) {
	rc := ctxAt("14:00", 800, 60)
	rc.DayEaten.Carbs = 100

	base := New(DefaultSettings()).Recommend(rc, models.Profile{}, nil)
	resistant := New(DefaultSettings(),
		WithPatterns(fakePatterns{}),
		WithPhenotype(fakePhenotype{phenotype: models.Phenotype{Metabolic: models.MetabolicInsulinResistant}, ok: true}),
	).Recommend(rc, models.Profile{}, nil)

	assert.Equal(t, base.Scenario, resistant.Scenario)
	assert.Equal(t, base.Macros.Kcal, resistant.Macros.Kcal)
	assert.Less(t, resistant.Macros.Carbs, base.Macros.Carbs)
	assert.Greater(t, resistant.Macros.Protein, base.Macros.Protein)
	require.NotNil(t, resistant.Insights)
	assert.True(t, resistant.Insights.PhenotypeAdjusted)

	undetected := New(DefaultSettings(),
		WithPhenotype(fakePhenotype{phenotype: models.Phenotype{Metabolic: models.MetabolicInsulinResistant}}),
	).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, base.Macros, undetected.Macros)

	sensitive := New(DefaultSettings(),
		WithPhenotype(fakePhenotype{phenotype: models.Phenotype{Metabolic: models.MetabolicInsulinSensitive}, ok: true}),
	).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, base.Macros, sensitive.Macros)
}

func TestPostWorkoutProteinFloorAfterPhenotype(t *testing.T) {
	rc := ctxAt("14:00", 1800, 110)
	rc.DayTarget.Kcal = 2000
	rc.Training = &models.Training{Time: "13:00", DurationMin: 30}
	rc.DayEaten.Kcal = 1840

	rec := New(DefaultSettings(),
		WithPhenotype(fakePhenotype{phenotype: models.Phenotype{Metabolic: models.MetabolicInsulinSensitive}, ok: true}),
	).Recommend(rc, models.Profile{}, nil)
	assert.Equal(t, ScenarioPostWorkout, rec.Scenario)
	assert.GreaterOrEqual(t, rec.Macros.Protein, 25)
}

func TestCurrentTimeFromClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC) }
	r := New(DefaultSettings(), WithClock(clock))

	rec := r.Recommend(ctxAt("", 800, 60), models.Profile{}, nil)
	assert.Equal(t, 14.5, rec.Timing.CurrentTime)

	rec = r.Recommend(ctxAt("25:99", 800, 60), models.Profile{}, nil)
	assert.Equal(t, 14.5, rec.Timing.CurrentTime)
}

func TestNewFillsZeroSettings(t *testing.T) {
	r := New(models.RecommenderConfig{})
	assert.Equal(t, DefaultSettings(), r.settings)

	r = New(models.RecommenderConfig{WindowMinutes: 90, DefaultConfidence: 0.6})
	assert.Equal(t, 90, r.settings.WindowMinutes)
	assert.Equal(t, 0.6, r.settings.DefaultConfidence)
	rec := r.Recommend(ctxAt("09:00", 0, 0), models.Profile{}, nil)
	assert.Equal(t, "09:00-10:30", rec.Timing.Ideal)
	assert.Equal(t, 0.6, rec.Confidence)
}
