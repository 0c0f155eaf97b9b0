package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrLoadChecklistCommandIsNotConstructed = errors.New(
		"LoadChecklistCommand must be created via NewLoadChecklistCommand constructor",
	)
	ErrChecklistIsEmpty = errors.New("checklist template must have at least one label")
)

// LoadChecklistCommand replaces an order's checklist with fresh unchecked
// items built from a template's labels.
type LoadChecklistCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	labels  []string

	guard guard.ConstructorGuard
}

func NewLoadChecklistCommand(orderID kernel.UUID, labels []string) (LoadChecklistCommand, error) {
	if err := orderID.Validate(); err != nil {
		return LoadChecklistCommand{}, err
	}
	if len(labels) == 0 {
		return LoadChecklistCommand{}, ErrChecklistIsEmpty
	}
	return LoadChecklistCommand{
		orderID: orderID,
		labels:  append([]string(nil), labels...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c LoadChecklistCommand) Validate() error {
	return c.guard.Validate(ErrLoadChecklistCommandIsNotConstructed)
}

func (c LoadChecklistCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c LoadChecklistCommand) Labels() []string {
	return append([]string(nil), c.labels...)
}
