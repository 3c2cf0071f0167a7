package cmd

import (
	"errors"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/recommender"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the next meal from a snapshot's context",
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

		at, _ := cmd.Flags().GetString("time")
		if at != "" {
			if _, err := models.ParseClock(at); err != nil {
				return err
			}
			if snap.Context == nil {
				snap.Context = &models.RecommendationContext{}
			}
			snap.Context.CurrentTime = at
		}

		rec := recommender.New(cfg.Recommender, snap.Options()...).Recommend(snap.Context, snap.Profile, snap.Days)
		return printJSON(rec)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringP("snapshot", "s", "", "JSON snapshot with profile, days, context and collaborator outputs")
	recommendCmd.Flags().String("time", "", "override the context's current time (HH:MM)")
}
