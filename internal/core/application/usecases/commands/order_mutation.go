package commands

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// mutateOrder runs fn on the row-locked order inside a unit of work and saves
// the result. Any error from fn rolls the whole transaction back. When fn
// leaves the order untouched nothing is written and the version stays.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	fn func(o *order.ServiceOrder) error,
) (*order.ServiceOrder, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = fn(o); err != nil {
		return nil, err
	}

	if o.HasChanges() {
		if err = repo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
