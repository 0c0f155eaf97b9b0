package ports

import (
	"context"

	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
)

// FinancialLedger stores transactions permanently; only their status changes.
type FinancialLedger interface {
	Post(ctx context.Context, tx *finance.Transaction) error

	// Void marks a transaction VOID. Voiding a void transaction is a no-op.
	Void(ctx context.Context, id kernel.UUID) error

	// ActiveForOrder returns the non-void transaction of an order, or nil.
	ActiveForOrder(ctx context.Context, orderID kernel.UUID) (*finance.Transaction, error)
}
