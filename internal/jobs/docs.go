// Package jobs provides scheduled background tasks for the order relay.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the live order views.
//
// # Available Jobs
//
// 1. CronScheduler - Runs one keep-alive per connected viewer at a fixed interval
// 2. ViewerReportJob - Runs every minute to log how many viewers are connected
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	scheduler := jobs.NewCronScheduler(logger)
//	jobManager := jobs.NewJobManager(scheduler, broadcaster, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Keep-alives use cron.Every, which has one-second resolution. The viewer report
// uses the seconds-enabled expression "0 * * * * *".
//
// # Error Handling
//
// - Panics inside scheduled functions are recovered and logged
// - Failed job starts will stop any already running jobs
package jobs
