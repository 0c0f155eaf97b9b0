// Package jobs runs the workshop's scheduled background work with
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. NotificationDispatchJob delivers order lifecycle events from the outbox
//     to the configured notifier (webhook or log). Failed deliveries stay in
//     the outbox and are retried until their attempt limit.
//  2. IdempotencyCleanupJob removes idempotency keys older than the
//     configured TTL.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchJob, cleanupJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a seconds field, for example
// "*/5 * * * * *" for every five seconds. The dispatch job skips a tick while
// the previous run is still going, so a slow webhook never causes
// overlapping deliveries of the same message.
package jobs
