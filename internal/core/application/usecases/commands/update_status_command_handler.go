package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type UpdateStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateStatusCommandHandler(uowFactory OrderUoWFactory) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		return o.ChangeStatus(cmd.Status())
	})
}
