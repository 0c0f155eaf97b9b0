package jobs

import (
	"context"
	"log/slog"
	"time"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// IdempotencyCleanupJob purges expired idempotency keys.
type IdempotencyCleanupJob struct {
	handler  commands.PurgeIdempotencyKeysCommandHandler
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewIdempotencyCleanupJob(
	handler commands.PurgeIdempotencyKeysCommandHandler,
	ttl time.Duration,
	schedule string,
	logger *slog.Logger,
) *IdempotencyCleanupJob {
	return &IdempotencyCleanupJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "idempotency_cleanup_job"),
	}
}

func (j *IdempotencyCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency cleanup job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

func (j *IdempotencyCleanupJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewPurgeIdempotencyKeysCommand(time.Now().UTC(), j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid idempotency cleanup settings", "error", err)
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Idempotency cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired idempotency keys removed", "count", removed)
	}
}

func (j *IdempotencyCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Idempotency cleanup job stopped")
}
