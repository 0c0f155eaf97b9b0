package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// Event names written to the outbox.
const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
	EventCompleted     = "order.completed"
	EventReopened      = "order.reopened"
	EventCanceled      = "order.canceled"
)

// Event records a lifecycle change of an order. Events are collected on the
// aggregate and drained by the unit of work on commit.
type Event struct {
	ID         kernel.UUID
	Name       string
	OrderID    kernel.UUID
	From       string
	To         string
	TotalValue string
	OccurredAt time.Time
}
