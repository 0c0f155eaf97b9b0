package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// CompleteOrderCommandHandler runs the completion settlement in one
// transaction. The order row is locked first, then the referenced part rows
// in ascending id order, so two settlements never wait on each other in
// opposite directions.
type CompleteOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	locker     ports.OrderLocker
	settlement services.Settlement
}

func NewCompleteOrderCommandHandler(
	uowFactory SettlementUoWFactory,
	locker ports.OrderLocker,
	settlement services.Settlement,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		settlement: settlement,
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.ServiceOrder, error) {
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

	replayed, done, err := claimIdempotencyKey(ctx, uow, cmd.IdempotencyKey(), OperationComplete, cmd.OrderID())
	if err != nil || done {
		return replayed, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if _, err = o.Status().Complete(); err != nil {
		return nil, err
	}

	ledger := uow.PartStockLedger()
	parts, err := ledger.Lock(ctx, h.settlement.RequiredParts(o))
	if err != nil {
		return nil, err
	}

	plan, err := h.settlement.Complete(o, parts)
	if err != nil {
		return nil, err
	}

	for _, debit := range plan.Debits {
		if _, err = ledger.Debit(ctx, debit.PartID, debit.Quantity, o.ID(), part.ReasonOrderCompletion); err != nil {
			return nil, err
		}
	}

	if err = uow.FinancialLedger().Post(ctx, plan.Income); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
