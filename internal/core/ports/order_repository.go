package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for service orders,
// including their items, checklist, time logs and notes.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.ServiceOrder) error

	// Update persists the aggregate if its stored version still matches the
	// version it was loaded with. A mismatch returns errs.VersionIsInvalidError.
	// On success the aggregate's version is advanced.
	Update(ctx context.Context, aggregate *order.ServiceOrder) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error)

	// GetForUpdate loads an order and holds a row lock on it until the
	// surrounding transaction ends. Mutating commands load orders this way.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error)
}
