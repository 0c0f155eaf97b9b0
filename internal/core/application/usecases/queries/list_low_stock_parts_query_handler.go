package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListLowStockPartsQueryHandler struct {
	db *gorm.DB
}

func NewListLowStockPartsQueryHandler(db *gorm.DB) ListLowStockPartsQueryHandler {
	return ListLowStockPartsQueryHandler{db: db}
}

// Handle returns the parts that need restocking, most depleted first.
func (h ListLowStockPartsQueryHandler) Handle(ctx context.Context, query ListLowStockPartsQuery) ([]PartView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, sku, name, quantity, min_stock, price, cost
		FROM parts
		WHERE quantity <= min_stock
		ORDER BY quantity - min_stock, sku
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]PartView, 0)
	for rows.Next() {
		var (
			p           PartView
			id          uuid.UUID
			price, cost decimal.Decimal
		)
		if err = rows.Scan(&id, &p.SKU, &p.Name, &p.Quantity, &p.MinStock, &price, &cost); err != nil {
			return nil, err
		}
		p.ID = kernel.UUIDFromGoogle(id)
		if p.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		if p.Cost, err = kernel.NewMoney(cost); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}
