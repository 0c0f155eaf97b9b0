package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderHandler func(ctx context.Context, factory commands.OrderUoWFactory, orderID kernel.UUID) (*order.ServiceOrder, error)

func expectMutation(ctx context.Context, o *order.ServiceOrder, saved bool) (*MockOrderUoWFactory, *MockUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	calls := []*mock.Call{
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
	}
	if saved {
		calls = append(calls,
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
		)
	}
	calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)
	return factory, uow, repo
}

func mutations(t *testing.T) map[string]orderHandler {
	t.Helper()
	return map[string]orderHandler{
		"update details": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			diagnosis := "water pump seal worn"
			cmd, err := commands.NewUpdateOrderDetailsCommand(id, order.DetailsPatch{Diagnosis: &diagnosis})
			require.NoError(t, err)
			return commands.NewUpdateOrderDetailsCommandHandler(f).Handle(ctx, cmd)
		},
		"update status": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewUpdateStatusCommand(id, order.Quotation)
			require.NoError(t, err)
			return commands.NewUpdateStatusCommandHandler(f).Handle(ctx, cmd)
		},
		"load checklist": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewLoadChecklistCommand(id, []string{"check oil", "check belts"})
			require.NoError(t, err)
			return commands.NewLoadChecklistCommandHandler(f).Handle(ctx, cmd)
		},
		"add checklist item": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewAddChecklistItemCommand(id, "inspect anodes")
			require.NoError(t, err)
			return commands.NewAddChecklistItemCommandHandler(f).Handle(ctx, cmd)
		},
		"start time log": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewStartTimeLogCommand(id, time.Now())
			require.NoError(t, err)
			return commands.NewTimeLogCommandHandler(f).Handle(ctx, cmd)
		},
		"stop time log": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewStopTimeLogCommand(id, time.Now())
			require.NoError(t, err)
			return commands.NewTimeLogCommandHandler(f).Handle(ctx, cmd)
		},
		"add note": func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
			cmd, err := commands.NewAddNoteCommand(id, "customer will pick up friday", "ana")
			require.NoError(t, err)
			return commands.NewAddNoteCommandHandler(f).Handle(ctx, cmd)
		},
	}
}

func TestOrderMutations_SaveOpenOrder(t *testing.T) {
	for name, handle := range mutations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			o := newOrder(t)
			if name == "stop time log" {
				require.NoError(t, o.StartTimeLog(time.Now().Add(-time.Hour)))
			}
			factory, uow, repo := expectMutation(ctx, o, true)

			got, err := handle(ctx, factory, o.ID())

			require.NoError(t, err)
			assert.Same(t, o, got)
			uow.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestOrderMutations_NoOpLeavesOrderUnwritten(t *testing.T) {
	tests := map[string]struct {
		prepare func(t *testing.T, o *order.ServiceOrder)
		handle  func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error)
	}{
		"stop without an open interval": {
			handle: func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
				cmd, err := commands.NewStopTimeLogCommand(id, time.Now())
				require.NoError(t, err)
				return commands.NewTimeLogCommandHandler(f).Handle(ctx, cmd)
			},
		},
		"start while an interval is open": {
			prepare: func(t *testing.T, o *order.ServiceOrder) {
				require.NoError(t, o.StartTimeLog(time.Now().Add(-time.Hour)))
			},
			handle: func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
				cmd, err := commands.NewStartTimeLogCommand(id, time.Now())
				require.NoError(t, err)
				return commands.NewTimeLogCommandHandler(f).Handle(ctx, cmd)
			},
		},
		"status set to the current one": {
			handle: func(ctx context.Context, f commands.OrderUoWFactory, id kernel.UUID) (*order.ServiceOrder, error) {
				cmd, err := commands.NewUpdateStatusCommand(id, order.Pending)
				require.NoError(t, err)
				return commands.NewUpdateStatusCommandHandler(f).Handle(ctx, cmd)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			o := newOrder(t)
			if tc.prepare != nil {
				tc.prepare(t, o)
				o.MarkPersisted()
			}
			version := o.Version()

			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockOrderUoWFactory)
			mock.InOrder(
				factory.On("Create").Return(uow).Once(),
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			got, err := tc.handle(ctx, factory, o.ID())

			require.NoError(t, err)
			assert.Same(t, o, got)
			assert.False(t, got.HasChanges())
			assert.Equal(t, version, got.Version())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestOrderMutations_RejectTerminalOrder(t *testing.T) {
	for name, handle := range mutations(t) {
		for _, terminal := range []func(o *order.ServiceOrder) error{
			(*order.ServiceOrder).Complete,
			(*order.ServiceOrder).Cancel,
		} {
			t.Run(name, func(t *testing.T) {
				ctx := t.Context()
				o := newOrder(t)
				require.NoError(t, terminal(o))
				factory, uow, repo := expectMutation(ctx, o, false)

				_, err := handle(ctx, factory, o.ID())

				require.ErrorIs(t, err, errs.ErrOrderLocked)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				uow.AssertNotCalled(t, "Commit", mock.Anything)
				uow.AssertExpectations(t)
			})
		}
	}
}

func TestRemoveItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	withLaborItem(t, o, 2, "70")
	withLaborItem(t, o, 1, "30")
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewRemoveItemCommand(o.ID(), itemID)
	require.NoError(t, err)
	factory, uow, _ := expectMutation(ctx, o, true)

	got, err := commands.NewRemoveItemCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, got.Items(), 1)
	assert.Equal(t, "30.00", got.TotalValue().String())
	uow.AssertExpectations(t)
}

func TestToggleChecklistItemCommandHandler_Handle_UnknownItem(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	cmd, err := commands.NewToggleChecklistItemCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)
	factory, uow, _ := expectMutation(ctx, o, false)

	_, err = commands.NewToggleChecklistItemCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_CompletedIsNotSettable(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Completed)
	require.NoError(t, err)
	factory, uow, _ := expectMutation(ctx, o, false)

	_, err = commands.NewUpdateStatusCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, order.Pending, o.Status())
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	withLaborItem(t, o, 1, "10")
	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	locker := new(MockOrderLocker)
	lock := new(MockLock)
	locker.On("Acquire", ctx, o.ID()).Return(lock, nil).Once()
	lock.On("Release", mock.Anything).Return(nil).Once()
	factory, uow, _ := expectMutation(ctx, o, true)

	got, err := commands.NewCancelOrderCommandHandler(factory, locker).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Canceled, got.Status())
	uow.AssertNotCalled(t, "PartStockLedger")
	uow.AssertNotCalled(t, "FinancialLedger")
	uow.AssertExpectations(t)
	lock.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CanceledTwice(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	require.NoError(t, o.Cancel())
	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	locker := new(MockOrderLocker)
	lock := new(MockLock)
	locker.On("Acquire", ctx, o.ID()).Return(lock, nil).Once()
	lock.On("Release", mock.Anything).Return(nil).Once()
	factory, uow, _ := expectMutation(ctx, o, false)

	_, err = commands.NewCancelOrderCommandHandler(factory, locker).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertExpectations(t)
}

func TestNewUpdateOrderDetailsCommand(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewUpdateOrderDetailsCommand(id, order.DetailsPatch{})
	require.ErrorIs(t, err, commands.ErrNothingToUpdate)

	blank := " "
	_, err = commands.NewUpdateOrderDetailsCommand(id, order.DetailsPatch{Description: &blank})
	require.ErrorIs(t, err, commands.ErrDescriptionIsRequired)

	negative := -3
	_, err = commands.NewUpdateOrderDetailsCommand(id, order.DetailsPatch{EstimatedDuration: &negative})
	require.ErrorIs(t, err, commands.ErrEstimatedDurationIsNegative)
}
