package ports

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

// ErrOrderBusy is returned when another request holds the order lock.
var ErrOrderBusy = errors.New("order is being modified by another request")

// OrderLocker serializes lifecycle commands on one order across instances.
// The database row lock remains the source of truth; this lock only keeps
// competing requests from queueing on it.
type OrderLocker interface {
	Acquire(ctx context.Context, orderID kernel.UUID) (Lock, error)
}

type Lock interface {
	Release(ctx context.Context) error
}
