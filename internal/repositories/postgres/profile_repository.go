package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Save(ctx context.Context, userID string, profile models.Profile) error {
	query := `
        INSERT INTO profiles (
            user_id, norm_kcal, norm_prot, norm_carb, norm_fat,
            optimum, deficit_pct_target, weight_goal
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id) DO UPDATE SET
            norm_kcal = EXCLUDED.norm_kcal,
            norm_prot = EXCLUDED.norm_prot,
            norm_carb = EXCLUDED.norm_carb,
            norm_fat = EXCLUDED.norm_fat,
            optimum = EXCLUDED.optimum,
            deficit_pct_target = EXCLUDED.deficit_pct_target,
            weight_goal = EXCLUDED.weight_goal`

	_, err := r.pool.Exec(ctx, query,
		userID,
		profile.Norm.Kcal,
		profile.Norm.Prot,
		profile.Norm.Carb,
		profile.Norm.Fat,
		profile.Optimum,
		profile.DeficitPctTarget.Float64(),
		profile.WeightGoal,
	)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (models.Profile, error) {
	query := `
        SELECT norm_kcal, norm_prot, norm_carb, norm_fat, optimum, deficit_pct_target, weight_goal
        FROM profiles WHERE user_id = $1`

	var p models.Profile
	var deficit float64
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.Norm.Kcal,
		&p.Norm.Prot,
		&p.Norm.Carb,
		&p.Norm.Fat,
		&p.Optimum,
		&deficit,
		&p.WeightGoal,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, fmt.Errorf("profile %s: %w", userID, repositories.ErrNotFound)
	}
	if err != nil {
		return p, err
	}
	p.DeficitPctTarget = models.FlexFloat(deficit)
	return p, nil
}

func (r *ProfileRepository) UserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT user_id FROM profiles ORDER BY user_id")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
