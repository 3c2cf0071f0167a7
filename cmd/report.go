package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/chrisdamba/foodinsights/internal/output"
	"github.com/chrisdamba/foodinsights/internal/report"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build insight reports for stored users and publish them to the configured output",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"source":   "history_source",
			"snapshot": "snapshot",
			"workers":  "workers",
			"days":     "history_days",
			"output":   "output_destination",
			"timeout":  "report_timeout",
		})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if cfg.ReportTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.ReportTimeout)
			defer cancel()
		}

		var source report.HistorySource
		if cfg.HistorySource == "file" {
			if cfg.SnapshotPath == "" {
				return errors.New("a snapshot file is required for the file source (--snapshot)")
			}
			snap, err := snapshot.Load(cfg.SnapshotPath)
			if err != nil {
				return err
			}
			source = report.SnapshotSource{Snapshot: snap}
		} else {
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			source = &report.StoreSource{Store: store, Days: cfg.HistoryDays, DefaultProfile: cfg.Profile}
		}

		dest, err := output.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := dest.Close(); err != nil {
				utils.Log.Errorf("Failed to close output: %v", err)
			}
		}()

		users, _ := cmd.Flags().GetStringSlice("users")
		runner := &report.Runner{
			Source:   source,
			Dest:     dest,
			Settings: cfg.Recommender,
			Workers:  cfg.Workers,
			Progress: os.Stderr,
		}
		_, err = runner.Run(ctx, users)
		return err
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("source", "file", "history source: file, postgres or sqlite")
	reportCmd.Flags().StringP("snapshot", "s", "", "JSON snapshot for the file source")
	reportCmd.Flags().StringSlice("users", nil, "user ids to report on (default: every stored user)")
	reportCmd.Flags().Int("workers", 4, "reports built concurrently")
	reportCmd.Flags().Int("days", 30, "days of history per report")
	reportCmd.Flags().StringP("output", "o", "console", "output: console, json, csv, parquet, kafka or postgres")
	reportCmd.Flags().Duration("timeout", 0, "abort the run after this long (0 uses report_timeout)")
}
