package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListStockMovementsQueryHandler returns the movements of one part in the
// order they were written. An unknown part is errs.ObjectNotFoundError, not
// an empty list.
type ListStockMovementsQueryHandler struct {
	db *gorm.DB
}

func NewListStockMovementsQueryHandler(db *gorm.DB) ListStockMovementsQueryHandler {
	return ListStockMovementsQueryHandler{db: db}
}

func (h ListStockMovementsQueryHandler) Handle(
	ctx context.Context,
	query ListStockMovementsQuery,
) ([]StockMovementView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM parts WHERE id = ?)`, query.PartID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("part", query.PartID().String())
	}

	rows, err := db.Raw(`
		SELECT id, part_id, order_id, delta, reason, reversal_of, note, created_at
		FROM stock_movements
		WHERE part_id = ?
		ORDER BY created_at, id
	`, query.PartID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]StockMovementView, 0)
	for rows.Next() {
		var (
			m                 StockMovementView
			id, partID        uuid.UUID
			orderID, reversal *uuid.UUID
			note              *string
		)
		if err = rows.Scan(&id, &partID, &orderID, &m.Delta, &m.Reason, &reversal, &note, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ID = kernel.UUIDFromGoogle(id)
		m.PartID = kernel.UUIDFromGoogle(partID)
		m.OrderID = optionalUUID(orderID)
		m.ReversalOf = optionalUUID(reversal)
		if note != nil {
			m.Note = *note
		}
		movements = append(movements, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return movements, nil
}

func optionalUUID(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := kernel.UUIDFromGoogle(*id)
	return &v
}
