package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/chrisdamba/foodinsights/internal/utils"
)

var ErrUnknownUser = errors.New("unknown user")

// HistorySource loads the report input for a user.
type HistorySource interface {
	UserIDs(ctx context.Context) ([]string, error)
	Load(ctx context.Context, userID string) (Input, error)
}

// SnapshotSource serves the single user of a snapshot file, with its
// patterns, context and collaborator outputs.
type SnapshotSource struct {
	Snapshot *snapshot.Snapshot
}

func (s SnapshotSource) UserIDs(context.Context) ([]string, error) {
	return []string{s.Snapshot.UserID}, nil
}

func (s SnapshotSource) Load(_ context.Context, userID string) (Input, error) {
	if userID != s.Snapshot.UserID {
		return Input{}, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	return Input{
		UserID:   userID,
		Profile:  s.Snapshot.Profile,
		Days:     s.Snapshot.Days,
		Patterns: s.Snapshot.Patterns,
		Context:  s.Snapshot.Context,
		Options:  s.Snapshot.Options(),
	}, nil
}

// StoreSource reads recent days and profiles from a history store. Users
// without a stored profile get DefaultProfile. Stores hold no pattern
// results or collaborator outputs, so inputs carry neither.
type StoreSource struct {
	Store          repositories.HistoryStore
	Days           int
	DefaultProfile models.Profile
	Now            func() time.Time
}

func (s *StoreSource) UserIDs(ctx context.Context) ([]string, error) {
	return s.Store.UserIDs(ctx)
}

func (s *StoreSource) Load(ctx context.Context, userID string) (Input, error) {
	profile, err := s.Store.Get(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Log.WithField("user", userID).Debug("no stored profile, using configured profile")
		profile = s.DefaultProfile
	} else if err != nil {
		return Input{}, err
	}

	limit := s.Days
	if limit <= 0 {
		limit = 30
	}
	days, err := s.Store.GetRecent(ctx, userID, limit)
	if err != nil {
		return Input{}, err
	}
	if len(days) == 0 {
		return Input{}, fmt.Errorf("%w: no history for %s", ErrUnknownUser, userID)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Input{
		UserID:  userID,
		Profile: profile,
		Days:    days,
		Context: ContextFromHistory(days, now()),
	}, nil
}
