package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrReceiveStockCommandIsNotConstructed = errors.New(
	"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
)

type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	partID   kernel.UUID
	quantity int
	note     string

	guard guard.ConstructorGuard
}

func NewReceiveStockCommand(partID kernel.UUID, quantity int, note string) (ReceiveStockCommand, error) {
	if err := partID.Validate(); err != nil {
		return ReceiveStockCommand{}, err
	}
	if quantity <= 0 {
		return ReceiveStockCommand{}, ErrQuantityIsInvalid
	}
	return ReceiveStockCommand{
		partID:   partID,
		quantity: quantity,
		note:     strings.TrimSpace(note),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

func (c ReceiveStockCommand) PartID() kernel.UUID {
	return c.partID
}

func (c ReceiveStockCommand) Quantity() int {
	return c.quantity
}

func (c ReceiveStockCommand) Note() string {
	return c.note
}
