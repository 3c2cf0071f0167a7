package output

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tidwall/gjson"
)

var topicTables = map[string]string{
	TopicInsightReports: "insight_reports",
}

var reportColumns = []string{
	"id", "user_id", "generated_at", "health_score", "goal_mode", "scenario", "confidence", "payload",
}

type PostgresOutput struct {
	pool *pgxpool.Pool
}

func NewPostgresOutput(ctx context.Context, databaseURL string) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	if err := postgres.CreateSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresOutput{pool: pool}, nil
}

func topicToTable(topic string) (string, error) {
	table, ok := topicTables[topic]
	if !ok {
		return "", fmt.Errorf("no table for topic %s", topic)
	}
	return table, nil
}

// reportValues maps a report message onto reportColumns. A report without a
// recommendation stores NULL scenario and confidence.
func reportValues(msg []byte) ([]any, error) {
	row, err := RowFromMessage(msg)
	if err != nil {
		return nil, err
	}
	var scenario *string
	var confidence *float64
	if rec := gjson.GetBytes(msg, "recommendation"); rec.Exists() {
		s, c := row.Scenario, row.Confidence
		scenario, confidence = &s, &c
	}
	return []any{
		row.ID,
		row.UserID,
		time.Unix(row.Timestamp, 0).UTC(),
		row.HealthScore,
		row.GoalMode,
		scenario,
		confidence,
		msg,
	}, nil
}

func (p *PostgresOutput) WriteMessage(ctx context.Context, topic string, msg []byte) error {
	table, err := topicToTable(topic)
	if err != nil {
		return err
	}
	values, err := reportValues(msg)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (id, user_id, generated_at, health_score, goal_mode, scenario, confidence, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO NOTHING`, pgx.Identifier{table}.Sanitize())

	if _, err := p.pool.Exec(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// WriteBatch loads reports with COPY.
func (p *PostgresOutput) WriteBatch(ctx context.Context, topic string, msgs [][]byte) error {
	table, err := topicToTable(topic)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(msgs))
	for _, msg := range msgs {
		values, err := reportValues(msg)
		if err != nil {
			return err
		}
		rows = append(rows, values)
	}

	n, err := p.pool.CopyFrom(ctx, pgx.Identifier{table}, reportColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", table, err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copied %d of %d reports into %s", n, len(rows), table)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
