package commands

import (
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var (
	ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
		"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
	)
	ErrNothingToUpdate = errors.New("at least one field must be provided")
)

// UpdateOrderDetailsCommand carries a partial update of the descriptive
// fields of an order. Nil fields are left unchanged.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   order.DetailsPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailsCommand(orderID kernel.UUID, patch order.DetailsPatch) (UpdateOrderDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}
	if patch == (order.DetailsPatch{}) {
		return UpdateOrderDetailsCommand{}, ErrNothingToUpdate
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return UpdateOrderDetailsCommand{}, ErrDescriptionIsRequired
	}
	if patch.EstimatedDuration != nil && *patch.EstimatedDuration < 0 {
		return UpdateOrderDetailsCommand{}, ErrEstimatedDurationIsNegative
	}
	if patch.ScheduledAt != nil {
		at := patch.ScheduledAt.In(time.UTC)
		patch.ScheduledAt = &at
	}

	return UpdateOrderDetailsCommand{
		orderID: orderID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderDetailsCommand) Patch() order.DetailsPatch {
	return c.patch
}
