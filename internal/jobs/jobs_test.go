package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOutbox struct {
	pending    []ports.OutboxMessage
	dispatched []kernel.UUID
	failed     []kernel.UUID
	fetchErr   error
}

func (s *stubOutbox) FetchPending(context.Context, int, int) ([]ports.OutboxMessage, error) {
	return s.pending, s.fetchErr
}

func (s *stubOutbox) MarkDispatched(_ context.Context, id kernel.UUID) error {
	s.dispatched = append(s.dispatched, id)
	return nil
}

func (s *stubOutbox) MarkFailed(_ context.Context, id kernel.UUID, _ string) error {
	s.failed = append(s.failed, id)
	return nil
}

type stubNotifier struct {
	err error
}

func (s stubNotifier) Notify(context.Context, ports.OutboxMessage) error {
	return s.err
}

func newDispatchJob(t *testing.T, outbox *stubOutbox, n ports.Notifier, buf *bytes.Buffer) *NotificationDispatchJob {
	t.Helper()
	cmd, err := commands.NewDispatchNotificationsCommand(10, 3)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewNotificationDispatchJob(commands.NewDispatchNotificationsCommandHandler(outbox, n), cmd, "* * * * * *", logger)
}

func TestNotificationDispatchJob_Run(t *testing.T) {
	t.Run("delivered messages are marked", func(t *testing.T) {
		var buf bytes.Buffer
		outbox := &stubOutbox{pending: []ports.OutboxMessage{{ID: kernel.NewUUID()}, {ID: kernel.NewUUID()}}}

		newDispatchJob(t, outbox, stubNotifier{}, &buf).run()

		assert.Len(t, outbox.dispatched, 2)
		assert.Contains(t, buf.String(), "Notifications delivered")
	})

	t.Run("failures are logged as a warning", func(t *testing.T) {
		var buf bytes.Buffer
		outbox := &stubOutbox{pending: []ports.OutboxMessage{{ID: kernel.NewUUID()}}}

		newDispatchJob(t, outbox, stubNotifier{err: errors.New("refused")}, &buf).run()

		assert.Len(t, outbox.failed, 1)
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("handler errors are logged", func(t *testing.T) {
		var buf bytes.Buffer
		outbox := &stubOutbox{fetchErr: errors.New("db down")}

		newDispatchJob(t, outbox, stubNotifier{}, &buf).run()

		assert.Contains(t, buf.String(), "db down")
	})
}

func TestJobManager_StartAllRejectsBadSchedule(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dispatch := newDispatchJob(t, &stubOutbox{}, stubNotifier{}, &buf)
	cleanup := NewIdempotencyCleanupJob(commands.PurgeIdempotencyKeysCommandHandler{}, time.Hour, "not a schedule", logger)

	err := NewJobManager(dispatch, cleanup).StartAll()

	require.ErrorContains(t, err, "idempotency cleanup job")
	assert.Contains(t, buf.String(), "Notification dispatch job stopped")
}
