package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrRegisterPartCommandIsNotConstructed = errors.New(
	"RegisterPartCommand must be created via NewRegisterPartCommand constructor",
)

// RegisterPartCommand adds a part to the catalog. Parts always start with
// zero quantity; stock enters through ReceiveStockCommand.
type RegisterPartCommand struct { //nolint:recvcheck //using for validation
	partID   kernel.UUID
	sku      string
	name     string
	price    kernel.Money
	cost     kernel.Money
	minStock int

	guard guard.ConstructorGuard
}

func NewRegisterPartCommand(
	partID kernel.UUID,
	sku string,
	name string,
	price kernel.Money,
	cost kernel.Money,
	minStock int,
) (RegisterPartCommand, error) {
	if err := partID.Validate(); err != nil {
		return RegisterPartCommand{}, err
	}
	return RegisterPartCommand{
		partID:   partID,
		sku:      sku,
		name:     name,
		price:    price,
		cost:     cost,
		minStock: minStock,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPartCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartCommandIsNotConstructed)
}

func (c RegisterPartCommand) PartID() kernel.UUID {
	return c.partID
}

func (c RegisterPartCommand) SKU() string {
	return c.sku
}

func (c RegisterPartCommand) Name() string {
	return c.name
}

func (c RegisterPartCommand) Price() kernel.Money {
	return c.price
}

func (c RegisterPartCommand) Cost() kernel.Money {
	return c.cost
}

func (c RegisterPartCommand) MinStock() int {
	return c.minStock
}
