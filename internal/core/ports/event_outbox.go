package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// OutboxMessage is a lifecycle event waiting to be delivered to the outside.
type OutboxMessage struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Name      string
	Payload   []byte
	Attempts  int
	CreatedAt time.Time
}

// EventOutbox is read by the notification dispatcher. Messages are written by
// the unit of work on commit, in the same transaction as the order.
type EventOutbox interface {
	FetchPending(ctx context.Context, limit int, maxAttempts int) ([]OutboxMessage, error)
	MarkDispatched(ctx context.Context, id kernel.UUID) error
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}

// Notifier delivers one outbox message. Delivery is best effort and never
// part of an order transition.
type Notifier interface {
	Notify(ctx context.Context, msg OutboxMessage) error
}
