package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DayRepository struct {
	pool *pgxpool.Pool
}

func NewDayRepository(pool *pgxpool.Pool) *DayRepository {
	return &DayRepository{pool: pool}
}

const insertDay = `
        INSERT INTO days (
            user_id, date, meals, weight_morning, cycle_day, sleep_hours,
            sleep_quality, stress, mood, steps, training_kcal, target_kcal, day_score
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
        )
        ON CONFLICT (user_id, date) DO UPDATE SET
            meals = EXCLUDED.meals,
            weight_morning = EXCLUDED.weight_morning,
            cycle_day = EXCLUDED.cycle_day,
            sleep_hours = EXCLUDED.sleep_hours,
            sleep_quality = EXCLUDED.sleep_quality,
            stress = EXCLUDED.stress,
            mood = EXCLUDED.mood,
            steps = EXCLUDED.steps,
            training_kcal = EXCLUDED.training_kcal,
            target_kcal = EXCLUDED.target_kcal,
            day_score = EXCLUDED.day_score`

func dayArgs(userID string, day models.DayRecord) ([]any, error) {
	date, err := day.ParsedDate()
	if err != nil {
		return nil, fmt.Errorf("day %q: %w", day.Date, err)
	}
	meals := day.Meals
	if meals == nil {
		meals = []models.Meal{}
	}
	return []any{
		userID,
		date,
		meals,
		day.WeightMorning,
		day.CycleDay,
		day.SleepHours,
		day.SleepQuality,
		day.Stress,
		day.Mood,
		day.Steps,
		day.TrainingKcal,
		day.TargetKcal,
		day.DayScore,
	}, nil
}

func (r *DayRepository) BulkCreate(ctx context.Context, userID string, days []models.DayRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, day := range days {
		args, err := dayArgs(userID, day)
		if err != nil {
			return err
		}
		batch.Queue(insertDay, args...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting days for %s: %w", userID, err)
	}

	return tx.Commit(ctx)
}

func (r *DayRepository) Create(ctx context.Context, userID string, day models.DayRecord) error {
	args, err := dayArgs(userID, day)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, insertDay, args...)
	return err
}

func (r *DayRepository) GetRecent(ctx context.Context, userID string, limit int) ([]models.DayRecord, error) {
	query := `
        SELECT date, meals, weight_morning, cycle_day, sleep_hours, sleep_quality,
            stress, mood, steps, training_kcal, target_kcal, day_score
        FROM (
            SELECT * FROM days WHERE user_id = $1 ORDER BY date DESC LIMIT $2
        ) recent
        ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DayRecord
	for rows.Next() {
		var day models.DayRecord
		var date time.Time
		err := rows.Scan(
			&date,
			&day.Meals,
			&day.WeightMorning,
			&day.CycleDay,
			&day.SleepHours,
			&day.SleepQuality,
			&day.Stress,
			&day.Mood,
			&day.Steps,
			&day.TrainingKcal,
			&day.TargetKcal,
			&day.DayScore,
		)
		if err != nil {
			return nil, err
		}
		day.Date = date.Format(models.DateLayout)
		days = append(days, day)
	}
	return days, rows.Err()
}

func (r *DayRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM days WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

func (r *DayRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE days")
	return err
}
