package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedOrder(t *testing.T, p *part.Part, qty int) (*order.ServiceOrder, *part.StockMovement, *finance.Transaction) {
	t.Helper()
	o := newOrder(t)
	withPartItem(t, o, p, qty)
	plan, err := services.NewSettlement().Complete(o, []*part.Part{p})
	require.NoError(t, err)
	orderID := o.ID()
	debit, err := part.NewDebit(p.ID(), qty, &orderID, part.ReasonOrderCompletion)
	require.NoError(t, err)
	o.PullEvents()
	return o, debit, plan.Income
}

func TestReopenOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	impeller := newPart(t, 5)
	o, debit, income := completedOrder(t, impeller, 2)
	cmd, err := commands.NewReopenOrderCommand(o.ID(), "")
	require.NoError(t, err)

	f := newCompleteFixture()
	handler := commands.NewReopenOrderCommandHandler(f.factory, f.locker, services.NewSettlement())
	mock.InOrder(
		f.locker.On("Acquire", ctx, o.ID()).Return(f.lock, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.ledger.On("OutstandingDebits", ctx, o.ID()).Return([]*part.StockMovement{debit}, nil).Once(),
		f.ledger.On("Lock", ctx, []kernel.UUID{impeller.ID()}).Return([]*part.Part{impeller}, nil).Once(),
		f.fin.On("ActiveForOrder", ctx, o.ID()).Return(income, nil).Once(),
		f.ledger.On("Apply", ctx, mock.MatchedBy(func(m *part.StockMovement) bool {
			return m.Delta() == 2 && m.Reason() == part.ReasonOrderReopenReversal && m.ReversalOf().IsEqual(debit.ID())
		})).Return(nil).Once(),
		f.fin.On("Void", ctx, income.ID()).Return(nil).Once(),
		f.repo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, got.Status())
	events := got.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventReopened, events[0].Name)
	f.assertAll(t)
}

func TestReopenOrderCommandHandler_Handle_SecondReopenFails(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	require.NoError(t, o.ChangeStatus(order.InProgress))
	cmd, err := commands.NewReopenOrderCommand(o.ID(), "")
	require.NoError(t, err)

	f := newCompleteFixture()
	handler := commands.NewReopenOrderCommandHandler(f.factory, f.locker, services.NewSettlement())
	mock.InOrder(
		f.locker.On("Acquire", ctx, o.ID()).Return(f.lock, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	f.ledger.AssertNotCalled(t, "OutstandingDebits", mock.Anything, mock.Anything)
	f.assertAll(t)
}

func TestReopenOrderCommandHandler_Handle_NoActiveIncome(t *testing.T) {
	ctx := t.Context()
	impeller := newPart(t, 5)
	o, debit, _ := completedOrder(t, impeller, 1)
	cmd, err := commands.NewReopenOrderCommand(o.ID(), "")
	require.NoError(t, err)

	f := newCompleteFixture()
	handler := commands.NewReopenOrderCommandHandler(f.factory, f.locker, services.NewSettlement())
	mock.InOrder(
		f.locker.On("Acquire", ctx, o.ID()).Return(f.lock, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.ledger.On("OutstandingDebits", ctx, o.ID()).Return([]*part.StockMovement{debit}, nil).Once(),
		f.ledger.On("Lock", ctx, []kernel.UUID{impeller.ID()}).Return([]*part.Part{impeller}, nil).Once(),
		f.fin.On("ActiveForOrder", ctx, o.ID()).Return(nil, nil).Once(),
		f.ledger.On("Apply", ctx, mock.Anything).Return(nil).Once(),
		f.repo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.fin.AssertNotCalled(t, "Void", mock.Anything, mock.Anything)
	f.assertAll(t)
}
