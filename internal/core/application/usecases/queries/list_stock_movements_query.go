package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrListStockMovementsQueryIsNotConstructed = errors.New(
	"ListStockMovementsQuery must be created via NewListStockMovementsQuery constructor",
)

type ListStockMovementsQuery struct {
	partID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListStockMovementsQuery(partID kernel.UUID) (ListStockMovementsQuery, error) {
	if err := partID.Validate(); err != nil {
		return ListStockMovementsQuery{}, err
	}
	return ListStockMovementsQuery{partID: partID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStockMovementsQuery) Validate() error {
	return q.guard.Validate(ErrListStockMovementsQueryIsNotConstructed)
}

func (q ListStockMovementsQuery) PartID() kernel.UUID {
	return q.partID
}

// StockMovementView is one ledger line. Delta is negative for debits.
type StockMovementView struct {
	ID         kernel.UUID
	PartID     kernel.UUID
	OrderID    *kernel.UUID
	Delta      int
	Reason     string
	ReversalOf *kernel.UUID
	Note       string
	CreatedAt  time.Time
}
