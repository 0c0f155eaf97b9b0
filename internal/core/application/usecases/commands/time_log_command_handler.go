package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type TimeLogCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTimeLogCommandHandler(uowFactory OrderUoWFactory) TimeLogCommandHandler {
	return TimeLogCommandHandler{uowFactory: uowFactory}
}

func (h TimeLogCommandHandler) Handle(ctx context.Context, cmd TimeLogCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		if cmd.Action() == StopTimeLog {
			return o.StopTimeLog(cmd.At())
		}
		return o.StartTimeLog(cmd.At())
	})
}
