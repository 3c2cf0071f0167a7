package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type RecommenderConfig struct {
	DefaultConfidence float64 `mapstructure:"default_confidence"`
	WindowMinutes     int     `mapstructure:"window_minutes"`
	StressThreshold   int     `mapstructure:"stress_threshold"`
	MoodThreshold     int     `mapstructure:"mood_threshold"`
	MinHistoryDays    int     `mapstructure:"min_history_days"`
	LateEatingHour    float64 `mapstructure:"late_eating_hour"`
	IdealMealGapMin   int     `mapstructure:"ideal_meal_gap_min"`
}

type SimulationConfig struct {
	Seed               int64     `mapstructure:"seed"`
	StartDate          time.Time `mapstructure:"start_date"`
	EndDate            time.Time `mapstructure:"end_date"`
	Users              int       `mapstructure:"users"`
	KcalStd            float64   `mapstructure:"kcal_std"`
	WeightStart        float64   `mapstructure:"weight_start"`
	WeightDriftPerWeek float64   `mapstructure:"weight_drift_per_week"`
	CycleTracking      bool      `mapstructure:"cycle_tracking"`
}

type Config struct {
	LogLevel string `mapstructure:"loglevel"`

	HistorySource string        `mapstructure:"history_source"`
	SnapshotPath  string        `mapstructure:"snapshot"`
	DatabaseURL   string        `mapstructure:"database_url"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	HistoryDays   int           `mapstructure:"history_days"`
	Workers       int           `mapstructure:"workers"`
	ReportTimeout time.Duration `mapstructure:"report_timeout"`
	Profile       Profile       `mapstructure:"profile"`

	OutputDestination string             `mapstructure:"output_destination"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`

	Recommender RecommenderConfig `mapstructure:"recommender"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
}

func setDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("history_source", "file")
	viper.SetDefault("history_days", 30)
	viper.SetDefault("workers", 4)
	viper.SetDefault("report_timeout", "30s")
	viper.SetDefault("output_destination", "console")
	viper.SetDefault("output_path", "output")
	viper.SetDefault("output_folder", "reports")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("profile.norm.kcal", DefaultDayKcal)
	viper.SetDefault("profile.norm.prot", DefaultDayProtein)
	viper.SetDefault("profile.norm.carb", DefaultDayCarbs)

	viper.SetDefault("recommender.default_confidence", 0.75)
	viper.SetDefault("recommender.window_minutes", 60)
	viper.SetDefault("recommender.stress_threshold", 4)
	viper.SetDefault("recommender.mood_threshold", 2)
	viper.SetDefault("recommender.min_history_days", 7)
	viper.SetDefault("recommender.late_eating_hour", DefaultLateEatingHour)
	viper.SetDefault("recommender.ideal_meal_gap_min", DefaultIdealMealGapMin)

	now := time.Now().Truncate(24 * time.Hour)
	viper.SetDefault("simulation.seed", 42)
	viper.SetDefault("simulation.start_date", now.AddDate(0, 0, -30).Format(time.RFC3339))
	viper.SetDefault("simulation.end_date", now.Format(time.RFC3339))
	viper.SetDefault("simulation.users", 1)
	viper.SetDefault("simulation.kcal_std", 250)
	viper.SetDefault("simulation.weight_start", 80)
	viper.SetDefault("simulation.weight_drift_per_week", -0.4)
}

// LoadConfig initializes and reads the configuration using Viper. A missing
// config file is not an error; defaults, env and bound flags still apply.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
