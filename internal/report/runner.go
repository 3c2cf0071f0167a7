package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/output"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	Source   HistorySource
	Dest     output.Destination
	Settings models.RecommenderConfig
	Workers  int
	Now      func() time.Time
	Progress io.Writer
}

// Run builds a report for every user, Workers at a time, and publishes each
// one. A failed load aborts the run; a failed write is logged and skipped.
// Destinations implementing output.BatchWriter receive all reports at once.
func (r *Runner) Run(ctx context.Context, userIDs []string) ([]Report, error) {
	if len(userIDs) == 0 {
		ids, err := r.Source.UserIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}
		userIDs = ids
	}

	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	progress := r.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(userIDs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("building reports"),
		progressbar.OptionShowCount(),
	)
	defer bar.Finish()

	batch, batching := r.Dest.(output.BatchWriter)
	reports := make([]Report, len(userIDs))
	msgs := make([][]byte, len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for i, id := range userIDs {
		i, id := i, id
		g.Go(func() error {
			in, err := r.Source.Load(gctx, id)
			if err != nil {
				return fmt.Errorf("loading history for %s: %w", id, err)
			}
			report := Build(in, r.Settings, now)
			msg, err := json.Marshal(report)
			if err != nil {
				return fmt.Errorf("encoding report for %s: %w", id, err)
			}
			reports[i], msgs[i] = report, msg

			if !batching {
				if err := r.Dest.WriteMessage(gctx, output.TopicInsightReports, msg); err != nil {
					utils.Log.WithField("user", id).Errorf("Failed to write report: %v", err)
				}
			}
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if batching {
		if err := batch.WriteBatch(ctx, output.TopicInsightReports, msgs); err != nil {
			utils.Log.Errorf("Failed to write %d reports: %v", len(msgs), err)
		}
	}
	utils.Log.Infof("Built %d reports", len(reports))
	return reports, nil
}
