package repositories

import (
	"context"
	"errors"

	"github.com/chrisdamba/foodinsights/internal/models"
)

var ErrNotFound = errors.New("not found")

type DayRepository interface {
	BulkCreate(ctx context.Context, userID string, days []models.DayRecord) error
	Create(ctx context.Context, userID string, day models.DayRecord) error
	// GetRecent returns up to limit most recent days, oldest first.
	GetRecent(ctx context.Context, userID string, limit int) ([]models.DayRecord, error)
	Count(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context) error
}

type ProfileRepository interface {
	Save(ctx context.Context, userID string, profile models.Profile) error
	Get(ctx context.Context, userID string) (models.Profile, error)
	UserIDs(ctx context.Context) ([]string, error)
}

// HistoryStore is a backend holding both days and profiles.
type HistoryStore interface {
	DayRepository
	ProfileRepository
	Close() error
}
