package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
	idempotencyCleanupJob   *IdempotencyCleanupJob
}

func NewJobManager(
	notificationDispatchJob *NotificationDispatchJob,
	idempotencyCleanupJob *IdempotencyCleanupJob,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: notificationDispatchJob,
		idempotencyCleanupJob:   idempotencyCleanupJob,
	}
}

// StartAll starts every job. If one fails to start, those already running
// are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	if err := jm.idempotencyCleanupJob.Start(); err != nil {
		jm.notificationDispatchJob.Stop()
		return fmt.Errorf("failed to start idempotency cleanup job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.idempotencyCleanupJob.Stop()
	jm.notificationDispatchJob.Stop()
}
