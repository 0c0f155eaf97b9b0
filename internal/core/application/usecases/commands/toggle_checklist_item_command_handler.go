package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type ToggleChecklistItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewToggleChecklistItemCommandHandler(uowFactory OrderUoWFactory) ToggleChecklistItemCommandHandler {
	return ToggleChecklistItemCommandHandler{uowFactory: uowFactory}
}

func (h ToggleChecklistItemCommandHandler) Handle(
	ctx context.Context,
	cmd ToggleChecklistItemCommand,
) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		return o.ToggleChecklistItem(cmd.ItemID())
	})
}
