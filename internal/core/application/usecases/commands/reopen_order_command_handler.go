package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// ReopenOrderCommandHandler undoes the last completion: every completion
// debit without a reversal gets one, the active income is voided and the
// order goes back to IN_PROGRESS.
type ReopenOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	locker     ports.OrderLocker
	settlement services.Settlement
}

func NewReopenOrderCommandHandler(
	uowFactory SettlementUoWFactory,
	locker ports.OrderLocker,
	settlement services.Settlement,
) ReopenOrderCommandHandler {
	return ReopenOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		settlement: settlement,
	}
}

func (h ReopenOrderCommandHandler) Handle(ctx context.Context, cmd ReopenOrderCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lock, err := h.locker.Acquire(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	replayed, done, err := claimIdempotencyKey(ctx, uow, cmd.IdempotencyKey(), OperationReopen, cmd.OrderID())
	if err != nil || done {
		return replayed, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if _, err = o.Status().Reopen(); err != nil {
		return nil, err
	}

	ledger := uow.PartStockLedger()
	outstanding, err := ledger.OutstandingDebits(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	if _, err = ledger.Lock(ctx, h.settlement.ReversalParts(outstanding)); err != nil {
		return nil, err
	}

	financial := uow.FinancialLedger()
	active, err := financial.ActiveForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	plan, err := h.settlement.Reopen(o, outstanding, active)
	if err != nil {
		return nil, err
	}

	for _, reversal := range plan.Reversals {
		if err = ledger.Apply(ctx, reversal); err != nil {
			return nil, err
		}
	}

	if plan.Void != nil {
		if err = financial.Void(ctx, plan.Void.ID()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
