package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand moves an order between the intermediate states.
// COMPLETED and CANCELED are reached only through their own commands.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateStatusCommand(orderID kernel.UUID, status order.Status) (UpdateStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateStatusCommand{}, err
	}
	if err := status.Validate(); err != nil {
		return UpdateStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return UpdateStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateStatusCommand) Status() order.Status {
	return c.status
}
