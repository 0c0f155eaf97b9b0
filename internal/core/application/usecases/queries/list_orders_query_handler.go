package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order rows directly; items are not loaded.
// Newest orders come first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, boat_id, description, technician_name, scheduled_at,
		       status, total_value, created_at, updated_at
		FROM service_orders`
	var args []any
	if status := query.Status(); status != nil {
		sql += ` WHERE status = ?`
		args = append(args, status.String())
	}
	sql += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			summary     OrderSummary
			id          uuid.UUID
			technician  *string
			scheduledAt *time.Time
			total       decimal.Decimal
		)
		if err = rows.Scan(
			&id,
			&summary.BoatID,
			&summary.Description,
			&technician,
			&scheduledAt,
			&summary.Status,
			&total,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		); err != nil {
			return nil, err
		}

		summary.ID = kernel.UUIDFromGoogle(id)
		if technician != nil {
			summary.TechnicianName = *technician
		}
		summary.ScheduledAt = scheduledAt
		if summary.TotalValue, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
