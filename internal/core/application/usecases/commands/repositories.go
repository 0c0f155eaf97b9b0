// Package commands contains the operations that change workshop state.
// Every handler validates its command, opens a unit of work, loads what it
// changes with row locks, applies domain logic and commits. Handlers that
// change an order return its state after commit.
package commands

import (
	"context"

	"workshop/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockLedgerFactory interface {
		PartStockLedger() ports.PartStockLedger
	}

	FinancialLedgerFactory interface {
		FinancialLedger() ports.FinancialLedger
	}

	IdempotencyRepoFactory interface {
		IdempotencyRepository() ports.IdempotencyRepository
	}

	// OrderUoW covers commands that touch only the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderCatalogUoW adds read access to the parts catalog, for item lines.
	OrderCatalogUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
	}

	OrderCatalogUoWFactory interface {
		Create() OrderCatalogUoW
	}

	// PartUoW covers catalog and stock intake commands.
	PartUoW interface {
		TxManager
		StockLedgerFactory
	}

	PartUoWFactory interface {
		Create() PartUoW
	}

	// IdempotencyUoW is used by the key cleanup job.
	IdempotencyUoW interface {
		TxManager
		IdempotencyRepoFactory
	}

	IdempotencyUoWFactory interface {
		Create() IdempotencyUoW
	}

	// SettlementUoW spans the order, both ledgers and the idempotency store.
	// Complete and Reopen run inside one.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   parts, err := uow.PartStockLedger().Lock(ctx, ids)
	//   // ... debit, post, update
	//
	//   err = uow.Commit(ctx)
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		FinancialLedgerFactory
		IdempotencyRepoFactory
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
