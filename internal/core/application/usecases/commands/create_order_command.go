package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrBoatIDIsRequired            = errors.New("boat id is required")
	ErrDescriptionIsRequired       = errors.New("description is required")
	ErrEstimatedDurationIsNegative = errors.New("estimated duration must not be negative")
)

// DefaultEstimatedDuration is used when the caller does not estimate the job.
const DefaultEstimatedDuration = 2

// CreateOrderCommand opens a new service order for a boat.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "boat-42", "engine does not start", 3)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	boatID            string
	description       string
	estimatedDuration int

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	boatID string,
	description string,
	estimatedDuration int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBoatID(boatID),
		cmd.setDescription(description),
		cmd.setEstimatedDuration(estimatedDuration),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) BoatID() string {
	return c.boatID
}

func (c CreateOrderCommand) Description() string {
	return c.description
}

// EstimatedDuration in hours.
func (c CreateOrderCommand) EstimatedDuration() int {
	return c.estimatedDuration
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBoatID(boatID string) error {
	if strings.TrimSpace(boatID) == "" {
		return ErrBoatIDIsRequired
	}
	c.boatID = boatID
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionIsRequired
	}
	c.description = description
	return nil
}

func (c *CreateOrderCommand) setEstimatedDuration(hours int) error {
	if hours < 0 {
		return ErrEstimatedDurationIsNegative
	}
	c.estimatedDuration = hours
	return nil
}
