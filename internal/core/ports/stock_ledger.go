package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/part"
)

// PartStockLedger owns part quantities. Quantity is never written directly:
// every change is a StockMovement written in the same transaction as the
// quantity update, so quantity always equals the sum of movement deltas.
type PartStockLedger interface {
	// Add registers a catalog part with zero quantity.
	Add(ctx context.Context, p *part.Part) error

	Get(ctx context.Context, id kernel.UUID) (*part.Part, error)

	// Lock loads the given parts holding row locks, acquired in ascending id
	// order. Unknown ids are reported with errs.ObjectNotFoundError.
	Lock(ctx context.Context, ids []kernel.UUID) ([]*part.Part, error)

	// Debit takes qty units out of a part for an order. It fails with
	// errs.InsufficientStockError, writing nothing, when fewer are available.
	Debit(ctx context.Context, partID kernel.UUID, qty int, orderID kernel.UUID, reason part.Reason) (*part.StockMovement, error)

	// Credit puts qty units back. It never fails on quantity.
	Credit(ctx context.Context, partID kernel.UUID, qty int, orderID *kernel.UUID, reason part.Reason, note string) (*part.StockMovement, error)

	// Apply persists a movement built by the domain (a reversal, typically)
	// together with its quantity change.
	Apply(ctx context.Context, m *part.StockMovement) error

	CurrentQuantity(ctx context.Context, partID kernel.UUID) (int, error)

	// OutstandingDebits returns the completion debits of an order that no
	// reversal references yet.
	OutstandingDebits(ctx context.Context, orderID kernel.UUID) ([]*part.StockMovement, error)
}
