package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	scheduler       *CronScheduler
	viewerReportJob *ViewerReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	scheduler *CronScheduler,
	viewers ViewerCounter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduler:       scheduler,
		viewerReportJob: NewViewerReportJob(viewers, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	if err := jm.viewerReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.scheduler.Stop()
		return fmt.Errorf("failed to start viewer report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.viewerReportJob.Stop()
	jm.scheduler.Stop()
}
