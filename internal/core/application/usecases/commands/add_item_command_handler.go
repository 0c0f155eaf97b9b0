package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
)

// AddItemCommandHandler adds item lines. PART lines must reference a part
// that exists in the catalog; an unknown part is a validation error, not a
// lookup miss, because the order itself was found.
type AddItemCommandHandler struct {
	uowFactory OrderCatalogUoWFactory
}

func NewAddItemCommandHandler(uowFactory OrderCatalogUoWFactory) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.CheckMutable(); err != nil {
		return nil, err
	}

	description := cmd.Description()
	unitCost := kernel.ZeroMoney()
	if cmd.Kind() == order.PartKind {
		p, err := uow.PartStockLedger().Get(ctx, *cmd.PartID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause("partId", err)
		}
		if err != nil {
			return nil, err
		}
		unitCost = p.Cost()
		if description == "" {
			description = p.Name()
		}
	}

	item, err := order.NewItem(cmd.Kind(), cmd.PartID(), description, cmd.Quantity(), cmd.UnitPrice(), unitCost)
	if err != nil {
		return nil, err
	}

	if err = o.AddItem(item); err != nil {
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
