package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type AddChecklistItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddChecklistItemCommandHandler(uowFactory OrderUoWFactory) AddChecklistItemCommandHandler {
	return AddChecklistItemCommandHandler{uowFactory: uowFactory}
}

func (h AddChecklistItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddChecklistItemCommand,
) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		_, err := o.AddChecklistItem(cmd.Label())
		return err
	})
}
