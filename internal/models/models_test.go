package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00", 0, false},
		{"18:30", 18.5, false},
		{"21:12", 21.2, false},
		{" 07:45 ", 7.75, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatClockWrapsPastMidnight(t *testing.T) {
	assert.Equal(t, "18:30", FormatClock(18.5))
	assert.Equal(t, "00:30", FormatClock(24.5))
	assert.Equal(t, "10:00", FormatClock(9.9999))
	assert.Equal(t, "22:00-23:00", FormatWindow(22, 23))
}

func TestFlexFloatCoercion(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"deficitPctTarget":"-15"}`), &p))
	assert.Equal(t, -15.0, p.DeficitPctTarget.Float64())

	require.NoError(t, json.Unmarshal([]byte(`{"deficitPctTarget":12.5}`), &p))
	assert.Equal(t, 12.5, p.DeficitPctTarget.Float64())

	require.NoError(t, json.Unmarshal([]byte(`{"deficitPctTarget":"lots"}`), &p))
	assert.Equal(t, 0.0, p.DeficitPctTarget.Float64())

	require.NoError(t, json.Unmarshal([]byte(`{"deficitPctTarget":null}`), &p))
	assert.Equal(t, 0.0, p.DeficitPctTarget.Float64())
}

func TestDayRecordHelpers(t *testing.T) {
	day3 := 3
	day12 := 12
	d := DayRecord{
		Date: "2024-03-01",
		Meals: []Meal{
			{Time: "08:00", Kcal: 400, Protein: 20},
			{Time: "13:00", Kcal: 650, Protein: 35},
		},
		CycleDay: &day3,
	}
	assert.True(t, d.HasMeals())
	assert.Equal(t, 1050.0, d.TotalKcal())
	assert.Equal(t, 55.0, d.TotalProtein())
	assert.True(t, d.InEarlyCycle())

	d.CycleDay = &day12
	assert.False(t, d.InEarlyCycle())
	d.CycleDay = nil
	assert.False(t, d.InEarlyCycle())

	parsed, err := d.ParsedDate()
	require.NoError(t, err)
	assert.Equal(t, time.March, parsed.Month())
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, 0.8, NormalizeScore(80))
	assert.Equal(t, 0.8, NormalizeScore(0.8))
	assert.Equal(t, 1.0, NormalizeScore(1))
	assert.Equal(t, 0.0, NormalizeScore(-3))
	assert.Equal(t, 1.0, NormalizeScore(250))
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
loglevel: debug
history_source: sqlite
sqlite_path: /tmp/history.db
report_timeout: 45s
output_destination: parquet
profile:
  norm:
    kcal: 2200
  deficit_pct_target: -15
recommender:
  window_minutes: 90
simulation:
  start_date: "2024-01-01T00:00:00Z"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.HistorySource)
	assert.Equal(t, 45*time.Second, cfg.ReportTimeout)
	assert.Equal(t, "parquet", cfg.OutputDestination)
	assert.Equal(t, 2200.0, cfg.Profile.Norm.Kcal)
	assert.Equal(t, -15.0, cfg.Profile.DeficitPctTarget.Float64())
	assert.Equal(t, 90, cfg.Recommender.WindowMinutes)
	assert.Equal(t, 0.75, cfg.Recommender.DefaultConfidence)
	assert.Equal(t, 2024, cfg.Simulation.StartDate.Year())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
