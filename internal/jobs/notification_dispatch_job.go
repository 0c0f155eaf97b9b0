package jobs

import (
	"context"
	"log/slog"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob drains the event outbox on a schedule.
type NotificationDispatchJob struct {
	handler  commands.DispatchNotificationsCommandHandler
	cmd      commands.DispatchNotificationsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler,
	cmd commands.DispatchNotificationsCommand,
	schedule string,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "notification_dispatch_job"),
	}
}

func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", j.schedule)
	return nil
}

func (j *NotificationDispatchJob) run() {
	ctx := context.Background()

	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch failed", "error", err)
		return
	}
	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Some notifications were not delivered", "sent", result.Sent, "failed", result.Failed)
	} else if result.Sent > 0 {
		j.logger.DebugContext(ctx, "Notifications delivered", "sent", result.Sent)
	}
}

// Stop waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
