package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
    CREATE TABLE IF NOT EXISTS profiles (
        user_id TEXT PRIMARY KEY,
        norm_kcal DOUBLE PRECISION NOT NULL DEFAULT 0,
        norm_prot DOUBLE PRECISION NOT NULL DEFAULT 0,
        norm_carb DOUBLE PRECISION NOT NULL DEFAULT 0,
        norm_fat DOUBLE PRECISION NOT NULL DEFAULT 0,
        optimum DOUBLE PRECISION NOT NULL DEFAULT 0,
        deficit_pct_target DOUBLE PRECISION NOT NULL DEFAULT 0,
        weight_goal DOUBLE PRECISION NOT NULL DEFAULT 0
    );

    CREATE TABLE IF NOT EXISTS days (
        user_id TEXT NOT NULL,
        date DATE NOT NULL,
        meals JSONB NOT NULL DEFAULT '[]',
        weight_morning DOUBLE PRECISION NOT NULL DEFAULT 0,
        cycle_day INTEGER,
        sleep_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
        sleep_quality INTEGER NOT NULL DEFAULT 0,
        stress INTEGER NOT NULL DEFAULT 0,
        mood INTEGER NOT NULL DEFAULT 0,
        steps INTEGER NOT NULL DEFAULT 0,
        training_kcal DOUBLE PRECISION NOT NULL DEFAULT 0,
        target_kcal DOUBLE PRECISION NOT NULL DEFAULT 0,
        day_score DOUBLE PRECISION NOT NULL DEFAULT 0,
        PRIMARY KEY (user_id, date)
    );

    CREATE TABLE IF NOT EXISTS insight_reports (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        generated_at TIMESTAMPTZ NOT NULL,
        health_score INTEGER NOT NULL,
        goal_mode TEXT NOT NULL,
        scenario TEXT,
        confidence DOUBLE PRECISION,
        payload JSONB NOT NULL
    );`

// Store is a Postgres-backed history store sharing one pool.
type Store struct {
	*DayRepository
	*ProfileRepository
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	if err := CreateSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{
		DayRepository:     NewDayRepository(pool),
		ProfileRepository: NewProfileRepository(pool),
		pool:              pool,
	}, nil
}

func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var _ repositories.HistoryStore = (*Store)(nil)
