package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrAddItemCommandIsNotConstructed = errors.New("AddItemCommand must be created via NewAddItemCommand constructor")
	ErrPartIDIsRequired               = errors.New("part id is required for PART items")
	ErrPartIDIsNotAllowed             = errors.New("part id is not allowed for LABOR items")
	ErrQuantityIsInvalid              = errors.New("quantity must be greater than 0")
)

// AddItemCommand appends a PART or LABOR line to an open order. For PART
// lines the unit cost is taken from the catalog; description defaults to the
// part name.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	kind        order.ItemKind
	partID      *kernel.UUID
	description string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

func NewAddItemCommand(
	orderID kernel.UUID,
	kind order.ItemKind,
	partID *kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
) (AddItemCommand, error) {
	cmd := AddItemCommand{
		description: description,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setKindAndPart(kind, partID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddItemCommand{}, err
	}

	return cmd, nil
}

func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

func (c AddItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddItemCommand) Kind() order.ItemKind {
	return c.kind
}

func (c AddItemCommand) PartID() *kernel.UUID {
	return c.partID
}

func (c AddItemCommand) Description() string {
	return c.description
}

func (c AddItemCommand) Quantity() int {
	return c.quantity
}

func (c AddItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *AddItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddItemCommand) setKindAndPart(kind order.ItemKind, partID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	switch {
	case kind == order.PartKind && partID == nil:
		return ErrPartIDIsRequired
	case kind == order.PartKind:
		if err := partID.Validate(); err != nil {
			return err
		}
		id := *partID
		c.partID = &id
	case partID != nil:
		return ErrPartIDIsNotAllowed
	}
	return nil
}

func (c *AddItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	if quantity > order.MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxItemQuantity)
	}
	c.quantity = quantity
	return nil
}
