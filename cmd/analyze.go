package cmd

import (
	"errors"
	"time"

	"github.com/chrisdamba/foodinsights/internal/report"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Health score, what-if scenarios, weight prediction and weekly wrap for a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"snapshot": "snapshot"})
		if err != nil {
			return err
		}
		if cfg.SnapshotPath == "" {
			return errors.New("a snapshot file is required (--snapshot)")
		}
		snap, err := snapshot.Load(cfg.SnapshotPath)
		if err != nil {
			return err
		}

		r := report.Build(report.Input{
			UserID:   snap.UserID,
			Profile:  snap.Profile,
			Days:     snap.Days,
			Patterns: snap.Patterns,
		}, cfg.Recommender, time.Now())
		return printJSON(r)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("snapshot", "s", "", "JSON snapshot with profile, days and patterns")
}
