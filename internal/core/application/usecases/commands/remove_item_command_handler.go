package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type RemoveItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveItemCommandHandler(uowFactory OrderUoWFactory) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{uowFactory: uowFactory}
}

func (h RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		return o.RemoveItem(cmd.ItemID())
	})
}
