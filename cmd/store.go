package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
	"github.com/chrisdamba/foodinsights/internal/repositories/sqlite"
)

var ErrUnsupportedSource = errors.New("unsupported history source")

func openStore(ctx context.Context, cfg *models.Config) (repositories.HistoryStore, error) {
	switch cfg.HistorySource {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database_url is required for the postgres source")
		}
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, errors.New("sqlite_path is required for the sqlite source")
		}
		return sqlite.NewStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, cfg.HistorySource)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
