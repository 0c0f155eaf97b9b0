package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchNotificationsCommand(t *testing.T) {
	_, err := commands.NewDispatchNotificationsCommand(0, 5)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewDispatchNotificationsCommand(10, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewDispatchNotificationsCommand(10, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, cmd.BatchSize())
	assert.Equal(t, 5, cmd.MaxAttempts())

	assert.ErrorIs(t, commands.DispatchNotificationsCommand{}.Validate(),
		commands.ErrDispatchNotificationsCommandIsNotConstructed)
}

func TestDispatchNotificationsCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewDispatchNotificationsCommand(20, 3)
	require.NoError(t, err)

	delivered := ports.OutboxMessage{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Name: "order.completed"}
	rejected := ports.OutboxMessage{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Name: "order.reopened"}

	t.Run("marks each message by outcome", func(t *testing.T) {
		outbox := new(MockEventOutbox)
		notifier := new(MockNotifier)

		mock.InOrder(
			outbox.On("FetchPending", ctx, 20, 3).Return([]ports.OutboxMessage{delivered, rejected}, nil).Once(),
			notifier.On("Notify", ctx, delivered).Return(nil).Once(),
			outbox.On("MarkDispatched", ctx, delivered.ID).Return(nil).Once(),
			notifier.On("Notify", ctx, rejected).Return(errors.New("502 bad gateway")).Once(),
			outbox.On("MarkFailed", ctx, rejected.ID, "502 bad gateway").Return(nil).Once(),
		)

		result, err := commands.NewDispatchNotificationsCommandHandler(outbox, notifier).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.DispatchResult{Sent: 1, Failed: 1}, result)
		outbox.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("fetch error", func(t *testing.T) {
		outbox := new(MockEventOutbox)
		notifier := new(MockNotifier)
		outbox.On("FetchPending", ctx, 20, 3).Return(nil, errors.New("connection reset")).Once()

		_, err := commands.NewDispatchNotificationsCommandHandler(outbox, notifier).Handle(ctx, cmd)

		require.ErrorContains(t, err, "connection reset")
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("bookkeeping error stops the run", func(t *testing.T) {
		outbox := new(MockEventOutbox)
		notifier := new(MockNotifier)
		outbox.On("FetchPending", ctx, 20, 3).Return([]ports.OutboxMessage{delivered, rejected}, nil).Once()
		notifier.On("Notify", ctx, delivered).Return(nil).Once()
		outbox.On("MarkDispatched", ctx, delivered.ID).Return(errors.New("deadlock")).Once()

		result, err := commands.NewDispatchNotificationsCommandHandler(outbox, notifier).Handle(ctx, cmd)

		require.Error(t, err)
		assert.Zero(t, result.Sent)
		notifier.AssertNumberOfCalls(t, "Notify", 1)
	})
}

func TestPurgeIdempotencyKeysCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := commands.NewPurgeIdempotencyKeysCommand(now, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewPurgeIdempotencyKeysCommand(now, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), cmd.Cutoff())

	uow := new(MockUoW)
	factory := new(MockIdempotencyUoWFactory)
	repo := new(MockIdempotencyRepository)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("IdempotencyRepository").Return(repo).Once(),
		repo.On("DeleteOlderThan", ctx, cmd.Cutoff()).Return(int64(7), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	removed, err := commands.NewPurgeIdempotencyKeysCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}
