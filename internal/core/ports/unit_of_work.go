// Package ports declares the contracts between the workshop core and its
// adapters: repositories and ledgers bound to a unit of work, the event
// outbox, notifiers and the order locker.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from
// it after Begin run inside the transaction; events of orders saved through
// it are written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PartStockLedger() PartStockLedger
	FinancialLedger() FinancialLedger
	IdempotencyRepository() IdempotencyRepository
}
