package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrAddChecklistItemCommandIsNotConstructed = errors.New(
		"AddChecklistItemCommand must be created via NewAddChecklistItemCommand constructor",
	)
	ErrLabelIsRequired = errors.New("label is required")
)

type AddChecklistItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	label   string

	guard guard.ConstructorGuard
}

func NewAddChecklistItemCommand(orderID kernel.UUID, label string) (AddChecklistItemCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddChecklistItemCommand{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return AddChecklistItemCommand{}, ErrLabelIsRequired
	}
	return AddChecklistItemCommand{
		orderID: orderID,
		label:   label,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddChecklistItemCommand) Validate() error {
	return c.guard.Validate(ErrAddChecklistItemCommandIsNotConstructed)
}

func (c AddChecklistItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddChecklistItemCommand) Label() string {
	return c.label
}
