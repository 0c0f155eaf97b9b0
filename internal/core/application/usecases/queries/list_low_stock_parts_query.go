package queries

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrListLowStockPartsQueryIsNotConstructed = errors.New(
	"ListLowStockPartsQuery must be created via NewListLowStockPartsQuery constructor",
)

// ListLowStockPartsQuery lists parts at or below their minimum stock.
type ListLowStockPartsQuery struct {
	guard guard.ConstructorGuard
}

func NewListLowStockPartsQuery() ListLowStockPartsQuery {
	return ListLowStockPartsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListLowStockPartsQuery) Validate() error {
	return q.guard.Validate(ErrListLowStockPartsQueryIsNotConstructed)
}

type PartView struct {
	ID       kernel.UUID
	SKU      string
	Name     string
	Quantity int
	MinStock int
	Price    kernel.Money
	Cost     kernel.Money
}
