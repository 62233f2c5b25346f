package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ViewerCounter reports how many live viewers are subscribed to order events.
type ViewerCounter interface {
	Count() int
}

// ViewerReportJob logs the number of connected viewers once a minute.
type ViewerReportJob struct {
	viewers ViewerCounter
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewViewerReportJob creates a new job reporting the viewer count.
func NewViewerReportJob(viewers ViewerCounter, logger *slog.Logger) *ViewerReportJob {
	return &ViewerReportJob{
		viewers: viewers,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "viewer_report_job"),
	}
}

// Report logs the current viewer count.
func (j *ViewerReportJob) Report(ctx context.Context) {
	j.logger.InfoContext(ctx, "Connected viewers", "count", j.viewers.Count())
}

// Start begins the viewer report job at the top of every minute.
func (j *ViewerReportJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.Report(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Viewer report job started (running every minute)")
	return nil
}

// Stop stops the viewer report job.
func (j *ViewerReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Viewer report job stopped")
}
