package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type LoadChecklistCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewLoadChecklistCommandHandler(uowFactory OrderUoWFactory) LoadChecklistCommandHandler {
	return LoadChecklistCommandHandler{uowFactory: uowFactory}
}

func (h LoadChecklistCommandHandler) Handle(ctx context.Context, cmd LoadChecklistCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		return o.LoadChecklist(cmd.Labels())
	})
}
