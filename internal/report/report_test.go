package report

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/output"
	"github.com/chrisdamba/foodinsights/internal/recommender"
	"github.com/chrisdamba/foodinsights/internal/repositories/sqlite"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var reportNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func profile() models.Profile {
	return models.Profile{
		Norm:             models.NutrientNorm{Kcal: 2000, Prot: 120, Carb: 200},
		DeficitPctTarget: -15,
		WeightGoal:       75,
	}
}

func history(n int) []models.DayRecord {
	days := make([]models.DayRecord, n)
	start := reportNow.AddDate(0, 0, -(n - 1))
	for i := range days {
		days[i] = models.DayRecord{
			Date: start.AddDate(0, 0, i).Format(models.DateLayout),
			Meals: []models.Meal{
				{Time: "08:00", Kcal: 500, Protein: 30, Carbs: 55, Fat: 15},
				{Time: "13:00", Kcal: 700, Protein: 40, Carbs: 70, Fat: 25},
				{Time: "19:00", Kcal: 600, Protein: 35, Carbs: 60, Fat: 20},
			},
			WeightMorning: 80 - 0.1*float64(i),
			DayScore:      70,
		}
	}
	return days
}

func input(userID string) Input {
	return Input{
		UserID:   userID,
		Profile:  profile(),
		Days:     history(14),
		Patterns: []models.PatternResult{{Pattern: models.PatternMealQuality, Available: true, Score: ptr(70.0), Confidence: 0.7}},
		Context: &models.RecommendationContext{
			CurrentTime: "14:30",
			LastMeal:    &models.LastMeal{Time: "13:00"},
			DayEaten:    models.Macros{Kcal: 1200, Protein: 70, Carbs: 125, Fat: 40},
		},
	}
}

func TestBuild(t *testing.T) {
	r := Build(input("u1"), recommender.DefaultSettings(), reportNow)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, reportNow.Unix(), r.Timestamp)
	assert.Equal(t, 70, r.HealthScore.Total)
	assert.Len(t, r.WhatIf, 3)
	assert.True(t, r.WeightPrediction.Available)
	assert.Equal(t, 14, r.WeeklyWrap.DaysWithData)
	require.NotNil(t, r.Recommendation)
	assert.True(t, r.Recommendation.Available)
	assert.Equal(t, recommender.ScenarioBalanced, r.Recommendation.Scenario)

	msg, err := json.Marshal(r)
	require.NoError(t, err)
	row, err := output.RowFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, int32(70), row.HealthScore)
	assert.Equal(t, "BALANCED", row.Scenario)
}

func TestBuildWithoutContext(t *testing.T) {
	in := input("u1")
	in.Context = nil
	r := Build(in, recommender.DefaultSettings(), reportNow)
	assert.Nil(t, r.Recommendation)

	msg, err := json.Marshal(r)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(msg, "recommendation").Exists())
}

func TestContextFromHistory(t *testing.T) {
	days := history(3)
	today := &days[2]
	today.Meals = []models.Meal{
		{Time: "12:45", Kcal: 600, Protein: 35, Carbs: 60, Fat: 20},
		{Time: "07:30", Kcal: 400, Protein: 25, Carbs: 45, Fat: 12},
	}
	today.Stress, today.Mood, today.TargetKcal = 4, 2, 1800

	rc := ContextFromHistory(days, reportNow)
	assert.Equal(t, "14:30", rc.CurrentTime)
	assert.Equal(t, models.Macros{Kcal: 1000, Protein: 60, Carbs: 105, Fat: 32}, rc.DayEaten)
	require.True(t, rc.HasLastMeal())
	assert.Equal(t, "12:45", rc.LastMeal.Time)
	assert.Equal(t, 600.0, rc.LastMeal.Kcal)
	assert.Equal(t, 1800.0, rc.DayTarget.Kcal)
	assert.Equal(t, 4, rc.Stress)

	stale := ContextFromHistory(days, reportNow.AddDate(0, 0, 1))
	assert.False(t, stale.HasLastMeal())
	assert.Zero(t, stale.DayEaten.Kcal)

	assert.Equal(t, "14:30", ContextFromHistory(nil, reportNow).CurrentTime)
}

type fakeSource struct {
	inputs map[string]Input
}

func (f fakeSource) UserIDs(context.Context) ([]string, error) {
	return []string{"u1", "u2", "u3"}, nil
}

func (f fakeSource) Load(_ context.Context, userID string) (Input, error) {
	in, ok := f.inputs[userID]
	if !ok {
		return Input{}, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	return in, nil
}

func newFakeSource(ids ...string) fakeSource {
	src := fakeSource{inputs: map[string]Input{}}
	for _, id := range ids {
		src.inputs[id] = input(id)
	}
	return src
}

type recordingDest struct {
	mu     sync.Mutex
	topics []string
	msgs   [][]byte
}

func (d *recordingDest) WriteMessage(_ context.Context, topic string, msg []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.topics = append(d.topics, topic)
	d.msgs = append(d.msgs, msg)
	return nil
}

func (d *recordingDest) Close() error { return nil }

type batchDest struct {
	recordingDest
	batches int
}

func (d *batchDest) WriteBatch(_ context.Context, topic string, msgs [][]byte) error {
	d.batches++
	d.topics = append(d.topics, topic)
	d.msgs = append(d.msgs, msgs...)
	return nil
}

func TestRunnerPublishesEveryUser(t *testing.T) {
	dest := &recordingDest{}
	runner := &Runner{
		Source:   newFakeSource("u1", "u2", "u3"),
		Dest:     dest,
		Settings: recommender.DefaultSettings(),
		Workers:  2,
		Now:      func() time.Time { return reportNow },
	}

	reports, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "u1", reports[0].UserID)
	assert.Equal(t, "u3", reports[2].UserID)

	require.Len(t, dest.msgs, 3)
	users := map[string]bool{}
	for i, msg := range dest.msgs {
		assert.Equal(t, output.TopicInsightReports, dest.topics[i])
		users[gjson.GetBytes(msg, "userId").String()] = true
	}
	assert.Len(t, users, 3)
}

func TestRunnerUsesBatchWriter(t *testing.T) {
	dest := &batchDest{}
	runner := &Runner{Source: newFakeSource("u1", "u2"), Dest: dest, Workers: 4, Now: func() time.Time { return reportNow }}

	_, err := runner.Run(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, dest.batches)
	assert.Len(t, dest.msgs, 2)
}

func TestRunnerStopsOnLoadError(t *testing.T) {
	runner := &Runner{Source: newFakeSource("u1"), Dest: &recordingDest{}, Workers: 1}

	_, err := runner.Run(context.Background(), []string{"u1", "missing"})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestRunnerWithJSONOutput(t *testing.T) {
	base := t.TempDir()
	dest := output.NewJSONOutput(base, "reports")
	runner := &Runner{Source: newFakeSource("u1", "u2"), Dest: dest, Workers: 2, Now: func() time.Time { return reportNow }}

	_, err := runner.Run(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.NoError(t, dest.Close())

	matches, err := filepath.Glob(filepath.Join(base, "reports", output.TopicInsightReports, "year=2024", "month=03", "day=10", "hour=14", "data.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSnapshotSource(t *testing.T) {
	src := SnapshotSource{Snapshot: &snapshot.Snapshot{UserID: "u1", Profile: profile(), Days: history(3)}}

	ids, err := src.UserIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)

	in, err := src.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, in.Days, 3)
	assert.Nil(t, in.Context)

	_, err = src.Load(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestStoreSource(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.BulkCreate(ctx, "u1", history(10)))
	src := &StoreSource{
		Store:          store,
		Days:           7,
		DefaultProfile: profile(),
		Now:            func() time.Time { return reportNow },
	}

	in, err := src.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, in.Days, 7)
	assert.Equal(t, profile(), in.Profile)
	require.NotNil(t, in.Context)
	assert.Equal(t, "19:00", in.Context.LastMeal.Time)
	assert.Equal(t, 1800.0, in.Context.DayEaten.Kcal)
	assert.Empty(t, in.Patterns)
	assert.Empty(t, in.Options)

	_, err = src.Load(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
