package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrOrderLocked            = errors.New("order is locked")
)

// InsufficientStockError is returned when a debit would take a part below zero.
// Nothing has been applied when it is returned, so the caller may fix stock and retry.
type InsufficientStockError struct {
	PartID    string
	Required  int
	Available int
}

func NewInsufficientStockError(partID string, required, available int) *InsufficientStockError {
	return &InsufficientStockError{
		PartID:    partID,
		Required:  required,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: part %s requires %d, available %d",
		ErrInsufficientStock, e.PartID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type InvalidStateTransitionError struct {
	From string
	To   string
}

func NewInvalidStateTransitionError(from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStateTransition, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// OrderLockedError is returned for any mutation of an order in a terminal status.
type OrderLockedError struct {
	OrderID string
	Status  string
}

func NewOrderLockedError(orderID, status string) *OrderLockedError {
	return &OrderLockedError{OrderID: orderID, Status: status}
}

func (e *OrderLockedError) Error() string {
	return fmt.Sprintf("%s: order %s is %s", ErrOrderLocked, e.OrderID, e.Status)
}

func (e *OrderLockedError) Unwrap() error {
	return ErrOrderLocked
}
