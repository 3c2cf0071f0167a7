// Package output delivers serialized insight reports to the configured
// destination: stdout, partitioned local files, S3, Kafka or Postgres.
package output

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/tidwall/gjson"
)

// TopicInsightReports is the topic every report is published under.
const TopicInsightReports = "insight_reports"

var (
	ErrUnsupportedDestination = errors.New("unsupported output destination")
	ErrInvalidMessage         = errors.New("invalid report message")
)

type Destination interface {
	WriteMessage(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// BatchWriter is implemented by destinations that can load many reports at once.
type BatchWriter interface {
	WriteBatch(ctx context.Context, topic string, msgs [][]byte) error
}

// ReportRow is the flat projection of a report used by tabular sinks.
type ReportRow struct {
	ID            string  `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	UserID        string  `json:"userId" parquet:"name=userId, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	HealthScore   int32   `json:"healthScore" parquet:"name=healthScore, type=INT32"`
	GoalMode      string  `json:"goalMode" parquet:"name=goalMode, type=BYTE_ARRAY, convertedtype=UTF8"`
	Scenario      string  `json:"scenario" parquet:"name=scenario, type=BYTE_ARRAY, convertedtype=UTF8"`
	Confidence    float64 `json:"confidence" parquet:"name=confidence, type=DOUBLE"`
	KcalTarget    int32   `json:"kcalTarget" parquet:"name=kcalTarget, type=INT32"`
	CurrentWeight float64 `json:"currentWeight" parquet:"name=currentWeight, type=DOUBLE"`
	WeeklyChange  float64 `json:"weeklyChange" parquet:"name=weeklyChange, type=DOUBLE"`
	DaysWithData  int32   `json:"daysWithData" parquet:"name=daysWithData, type=INT32"`
}

var rowPaths = []string{
	"id",
	"userId",
	"timestamp",
	"healthScore.total",
	"healthScore.goalMode",
	"recommendation.scenario",
	"recommendation.confidence",
	"recommendation.macros.kcal",
	"weightPrediction.currentWeight",
	"weightPrediction.weeklyChange",
	"weeklyWrap.daysWithData",
}

var csvHeader = []string{
	"id", "userId", "timestamp", "healthScore", "goalMode", "scenario",
	"confidence", "kcalTarget", "currentWeight", "weeklyChange", "daysWithData",
}

func RowFromMessage(msg []byte) (ReportRow, error) {
	if !gjson.ValidBytes(msg) {
		return ReportRow{}, ErrInvalidMessage
	}
	r := gjson.GetManyBytes(msg, rowPaths...)
	if !r[2].Exists() {
		return ReportRow{}, fmt.Errorf("%w: missing timestamp", ErrInvalidMessage)
	}
	return ReportRow{
		ID:            r[0].String(),
		UserID:        r[1].String(),
		Timestamp:     r[2].Int(),
		HealthScore:   int32(r[3].Int()),
		GoalMode:      r[4].String(),
		Scenario:      r[5].String(),
		Confidence:    r[6].Float(),
		KcalTarget:    int32(r[7].Int()),
		CurrentWeight: r[8].Float(),
		WeeklyChange:  r[9].Float(),
		DaysWithData:  int32(r[10].Int()),
	}, nil
}

func (r ReportRow) record() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		r.ID,
		r.UserID,
		strconv.FormatInt(r.Timestamp, 10),
		strconv.Itoa(int(r.HealthScore)),
		r.GoalMode,
		r.Scenario,
		f(r.Confidence),
		strconv.Itoa(int(r.KcalTarget)),
		f(r.CurrentWeight),
		f(r.WeeklyChange),
		strconv.Itoa(int(r.DaysWithData)),
	}
}

// partitionPath returns the hive-style directory for a report timestamp.
func partitionPath(timestamp int64) string {
	t := time.Unix(timestamp, 0).UTC()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", t.Year(), t.Month(), t.Day(), t.Hour())
}

func partitionDir(basePath, folder, topic string, timestamp int64) string {
	return filepath.Join(basePath, folder, topic, filepath.FromSlash(partitionPath(timestamp)))
}

// New builds the destination named by config.OutputDestination.
func New(ctx context.Context, config *models.Config) (Destination, error) {
	switch config.OutputDestination {
	case "console", "":
		return NewConsoleOutput(nil), nil
	case "json":
		return NewJSONOutput(config.OutputPath, config.OutputFolder), nil
	case "csv":
		return NewCSVOutput(config.OutputPath, config.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(ctx, config)
	case "kafka":
		return NewKafkaOutput(config)
	case "postgres":
		return NewPostgresOutput(ctx, config.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDestination, config.OutputDestination)
	}
}
