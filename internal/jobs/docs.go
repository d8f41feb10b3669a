// Package jobs provides scheduled background tasks for the sortable service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. GapRepairJob - Repacks every category so positions stay dense (1..n)
// after direct database edits or a repack that failed after a delete.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(repackHandler, "@every 1m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The schedule is a six-field cron expression (seconds first) or a
// descriptor such as "@every 30s". An empty schedule disables the job.
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick.
package jobs
