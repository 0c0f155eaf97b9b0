package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrReopenOrderCommandIsNotConstructed = errors.New(
	"ReopenOrderCommand must be created via NewReopenOrderCommand constructor",
)

type ReopenOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewReopenOrderCommand(orderID kernel.UUID, idempotencyKey string) (ReopenOrderCommand, error) {
	key, err := parseIdempotencyKey(idempotencyKey)
	if err = errors.Join(orderID.Validate(), err); err != nil {
		return ReopenOrderCommand{}, err
	}
	return ReopenOrderCommand{
		orderID:        orderID,
		idempotencyKey: key,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ReopenOrderCommand) Validate() error {
	return c.guard.Validate(ErrReopenOrderCommandIsNotConstructed)
}

func (c ReopenOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReopenOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}
