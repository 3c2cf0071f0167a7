package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	_ "modernc.org/sqlite"
)

// Store keeps days and profiles in a single SQLite file.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profiles (
        user_id TEXT PRIMARY KEY,
        norm_kcal REAL NOT NULL DEFAULT 0,
        norm_prot REAL NOT NULL DEFAULT 0,
        norm_carb REAL NOT NULL DEFAULT 0,
        norm_fat REAL NOT NULL DEFAULT 0,
        optimum REAL NOT NULL DEFAULT 0,
        deficit_pct_target REAL NOT NULL DEFAULT 0,
        weight_goal REAL NOT NULL DEFAULT 0
    );

    CREATE TABLE IF NOT EXISTS days (
        user_id TEXT NOT NULL,
        date TEXT NOT NULL,
        meals TEXT NOT NULL DEFAULT '[]',
        weight_morning REAL NOT NULL DEFAULT 0,
        cycle_day INTEGER,
        sleep_hours REAL NOT NULL DEFAULT 0,
        sleep_quality INTEGER NOT NULL DEFAULT 0,
        stress INTEGER NOT NULL DEFAULT 0,
        mood INTEGER NOT NULL DEFAULT 0,
        steps INTEGER NOT NULL DEFAULT 0,
        training_kcal REAL NOT NULL DEFAULT 0,
        target_kcal REAL NOT NULL DEFAULT 0,
        day_score REAL NOT NULL DEFAULT 0,
        PRIMARY KEY (user_id, date)
    );

    CREATE INDEX IF NOT EXISTS idx_days_user_date ON days(user_id, date);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const upsertDay = `
    INSERT OR REPLACE INTO days (
        user_id, date, meals, weight_morning, cycle_day, sleep_hours, sleep_quality,
        stress, mood, steps, training_kcal, target_kcal, day_score
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertDay(ctx context.Context, db execer, userID string, day models.DayRecord) error {
	if _, err := day.ParsedDate(); err != nil {
		return fmt.Errorf("day %q: %w", day.Date, err)
	}
	meals := day.Meals
	if meals == nil {
		meals = []models.Meal{}
	}
	mealsJSON, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}
	var cycleDay sql.NullInt64
	if day.CycleDay != nil {
		cycleDay = sql.NullInt64{Int64: int64(*day.CycleDay), Valid: true}
	}
	_, err = db.ExecContext(ctx, upsertDay,
		userID, day.Date, string(mealsJSON), day.WeightMorning, cycleDay,
		day.SleepHours, day.SleepQuality, day.Stress, day.Mood, day.Steps,
		day.TrainingKcal, day.TargetKcal, day.DayScore)
	if err != nil {
		return fmt.Errorf("failed to insert day: %w", err)
	}
	return nil
}

func (s *Store) BulkCreate(ctx context.Context, userID string, days []models.DayRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, day := range days {
		if err := insertDay(ctx, tx, userID, day); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Create(ctx context.Context, userID string, day models.DayRecord) error {
	return insertDay(ctx, s.db, userID, day)
}

func (s *Store) GetRecent(ctx context.Context, userID string, limit int) ([]models.DayRecord, error) {
	query := `
        SELECT date, meals, weight_morning, cycle_day, sleep_hours, sleep_quality,
            stress, mood, steps, training_kcal, target_kcal, day_score
        FROM (
            SELECT * FROM days WHERE user_id = ? ORDER BY date DESC LIMIT ?
        )
        ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []models.DayRecord
	for rows.Next() {
		var day models.DayRecord
		var mealsJSON string
		var cycleDay sql.NullInt64
		err := rows.Scan(
			&day.Date, &mealsJSON, &day.WeightMorning, &cycleDay, &day.SleepHours,
			&day.SleepQuality, &day.Stress, &day.Mood, &day.Steps,
			&day.TrainingKcal, &day.TargetKcal, &day.DayScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		if err := json.Unmarshal([]byte(mealsJSON), &day.Meals); err != nil {
			return nil, fmt.Errorf("failed to decode meals for %s: %w", day.Date, err)
		}
		if cycleDay.Valid {
			cd := int(cycleDay.Int64)
			day.CycleDay = &cd
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM days WHERE user_id = ?", userID).Scan(&count)
	return count, err
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM days")
	return err
}

func (s *Store) Save(ctx context.Context, userID string, profile models.Profile) error {
	query := `
        INSERT OR REPLACE INTO profiles (
            user_id, norm_kcal, norm_prot, norm_carb, norm_fat, optimum, deficit_pct_target, weight_goal
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		userID, profile.Norm.Kcal, profile.Norm.Prot, profile.Norm.Carb, profile.Norm.Fat,
		profile.Optimum, profile.DeficitPctTarget.Float64(), profile.WeightGoal)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID string) (models.Profile, error) {
	query := `
        SELECT norm_kcal, norm_prot, norm_carb, norm_fat, optimum, deficit_pct_target, weight_goal
        FROM profiles WHERE user_id = ?`

	var p models.Profile
	var deficit float64
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Norm.Kcal, &p.Norm.Prot, &p.Norm.Carb, &p.Norm.Fat, &p.Optimum, &deficit, &p.WeightGoal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("profile %s: %w", userID, repositories.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("failed to load profile: %w", err)
	}
	p.DeficitPctTarget = models.FlexFloat(deficit)
	return p, nil
}

func (s *Store) UserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id FROM profiles ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repositories.HistoryStore = (*Store)(nil)
