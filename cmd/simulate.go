package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/chrisdamba/foodinsights/internal/simulator"
	"github.com/chrisdamba/foodinsights/internal/snapshot"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate synthetic day histories into a snapshot file or a history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"target": "history_source",
			"seed":   "simulation.seed",
			"users":  "simulation.users",
		})
		if err != nil {
			return err
		}

		simCfg := cfg.Simulation
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			simCfg.EndDate = time.Now().UTC().Truncate(24 * time.Hour)
			simCfg.StartDate = simCfg.EndDate.AddDate(0, 0, -(days - 1))
		}
		ids, _ := cmd.Flags().GetStringSlice("user")

		sim := simulator.NewSimulator(&simCfg)
		sim.Progress = os.Stderr

		if cfg.HistorySource == "file" {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return errors.New("an output snapshot path is required for the file target (--out)")
			}
			if len(ids) == 0 {
				ids = []string{"user-1"}
			}
			histories, err := sim.Generate(ids[:1])
			if err != nil {
				return err
			}
			h := histories[0]
			snap := &snapshot.Snapshot{UserID: h.UserID, Profile: h.Profile, Days: h.Days}
			if err := snap.Save(out); err != nil {
				return err
			}
			utils.Log.Infof("Wrote %d days for %s to %s", len(h.Days), h.UserID, out)
			return nil
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = sim.Run(ctx, store, ids)
		return err
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("target", "file", "where to write: file, postgres or sqlite")
	simulateCmd.Flags().String("out", "", "snapshot path for the file target")
	simulateCmd.Flags().Int("days", 0, "days of history ending today (default: simulation.start_date to end_date)")
	simulateCmd.Flags().StringSlice("user", nil, "user ids to simulate (default: simulation.users fresh ids)")
	simulateCmd.Flags().Int64("seed", 42, "random seed")
	simulateCmd.Flags().Int("users", 1, "number of users when no ids are given")
}
