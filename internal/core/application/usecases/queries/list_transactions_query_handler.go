package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewListTransactionsQueryHandler(db *gorm.DB) ListTransactionsQueryHandler {
	return ListTransactionsQueryHandler{db: db}
}

func (h ListTransactionsQueryHandler) Handle(
	ctx context.Context,
	query ListTransactionsQuery,
) ([]TransactionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, order_id, type, category, description, amount, status, created_at, voided_at
		FROM financial_transactions`
	var args []any
	if orderID := query.OrderID(); orderID != nil {
		sql += ` WHERE order_id = ?`
		args = append(args, orderID.Bytes())
	}
	sql += ` ORDER BY created_at, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]TransactionView, 0)
	for rows.Next() {
		var (
			t           TransactionView
			id          uuid.UUID
			orderID     *uuid.UUID
			description *string
			amount      decimal.Decimal
			voidedAt    *time.Time
		)
		if err = rows.Scan(&id, &orderID, &t.Type, &t.Category, &description, &amount, &t.Status,
			&t.CreatedAt, &voidedAt); err != nil {
			return nil, err
		}
		t.ID = kernel.UUIDFromGoogle(id)
		t.OrderID = optionalUUID(orderID)
		if description != nil {
			t.Description = *description
		}
		if t.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		t.VoidedAt = voidedAt
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
