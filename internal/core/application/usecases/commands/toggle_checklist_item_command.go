package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrToggleChecklistItemCommandIsNotConstructed = errors.New(
	"ToggleChecklistItemCommand must be created via NewToggleChecklistItemCommand constructor",
)

type ToggleChecklistItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewToggleChecklistItemCommand(orderID, itemID kernel.UUID) (ToggleChecklistItemCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return ToggleChecklistItemCommand{}, err
	}
	return ToggleChecklistItemCommand{
		orderID: orderID,
		itemID:  itemID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleChecklistItemCommand) Validate() error {
	return c.guard.Validate(ErrToggleChecklistItemCommandIsNotConstructed)
}

func (c ToggleChecklistItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ToggleChecklistItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
