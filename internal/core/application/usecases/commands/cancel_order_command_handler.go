package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. Neither ledger is touched.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.ServiceOrder, error) {
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

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		return o.Cancel()
	})
}
