package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"posrelay/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// CronScheduler runs functions at fixed intervals until they are cancelled.
// It backs the per-viewer keep-alives of the event stream.
type CronScheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCronScheduler creates a scheduler whose jobs recover from panics and log them.
func NewCronScheduler(logger *slog.Logger) *CronScheduler {
	logger = logger.With("component", "cron_scheduler")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	return &CronScheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cronLogger))),
		logger: logger,
	}
}

// Every schedules fn to run once per interval. The returned cancel function
// removes the entry; calling it more than once has no further effect.
func (s *CronScheduler) Every(interval time.Duration, fn func()) (func(), error) {
	if interval <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("interval", interval, time.Second, "unbounded")
	}
	if fn == nil {
		return nil, errs.NewValueIsRequiredError("fn")
	}

	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(fn))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.cron.Remove(id)
		})
	}, nil
}

// Len returns the number of scheduled entries.
func (s *CronScheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins running scheduled entries in the background.
func (s *CronScheduler) Start() error {
	s.cron.Start()
	s.logger.InfoContext(context.Background(), "Scheduler started")
	return nil
}

// Stop stops the scheduler. Running functions are not interrupted.
func (s *CronScheduler) Stop() {
	s.cron.Stop()
	s.logger.InfoContext(context.Background(), "Scheduler stopped")
}
