// Package financeledger stores financial transactions. Rows are never
// deleted; voiding only changes status and stamps voided_at.
package financeledger

import (
	"context"
	"errors"
	"time"

	"workshop/internal/adapters/out/postgres/pgerr"
	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Category    string          `gorm:"type:varchar(64);not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status      string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;autoCreateTime:false;not null"`
	VoidedAt    *time.Time      `gorm:"type:timestamptz"`
}

func (TransactionDTO) TableName() string {
	return "financial_transactions"
}

// ActiveIncomeIndex allows at most one non-void income per order.
const ActiveIncomeIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_financial_transactions_active_income
	ON financial_transactions (order_id)
	WHERE type = 'INCOME' AND status <> 'VOID' AND order_id IS NOT NULL`

type GormFinancialLedger struct {
	db *gorm.DB
}

func NewGormFinancialLedger(db *gorm.DB) *GormFinancialLedger {
	return &GormFinancialLedger{db: db}
}

// Post fails with errs.VersionIsInvalidError when the order already has an
// active income.
func (l *GormFinancialLedger) Post(ctx context.Context, tx *finance.Transaction) error {
	if tx == nil {
		return errs.NewValueIsRequiredError("transaction")
	}
	if tx.IsVoid() {
		return errs.NewValueIsInvalidError("status")
	}

	dto := fromDomain(tx)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewVersionIsInvalidError("orderId", err)
		}
		return err
	}
	return nil
}

// Void is idempotent: voiding a VOID transaction changes nothing.
func (l *GormFinancialLedger) Void(ctx context.Context, id kernel.UUID) error {
	db := l.db.WithContext(ctx)
	result := db.Model(&TransactionDTO{}).
		Where("id = ? AND status <> ?", id.Bytes(), string(finance.Void)).
		Updates(map[string]any{
			"status":    string(finance.Void),
			"voided_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&TransactionDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("transaction", id.String())
	}
	return nil
}

// ActiveForOrder returns nil, nil when the order has no non-void income.
func (l *GormFinancialLedger) ActiveForOrder(ctx context.Context, orderID kernel.UUID) (*finance.Transaction, error) {
	var dto TransactionDTO
	err := l.db.WithContext(ctx).
		Where("order_id = ? AND type = ? AND status <> ?", orderID.Bytes(), string(finance.Income), string(finance.Void)).
		Order("created_at DESC").
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is a valid answer
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func fromDomain(tx *finance.Transaction) TransactionDTO {
	var orderID *uuid.UUID
	if id := tx.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}
	return TransactionDTO{
		ID:          tx.ID().Bytes(),
		OrderID:     orderID,
		Type:        string(tx.Type()),
		Category:    tx.Category(),
		Description: tx.Description(),
		Amount:      tx.Amount().Decimal(),
		Status:      string(tx.Status()),
		CreatedAt:   tx.CreatedAt(),
		VoidedAt:    tx.VoidedAt(),
	}
}

func toDomain(dto TransactionDTO) (*finance.Transaction, error) {
	txType, err := finance.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}
	status := finance.Status(dto.Status)
	if err = status.Validate(); err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	var orderID *kernel.UUID
	if dto.OrderID != nil {
		id := kernel.UUIDFromGoogle(*dto.OrderID)
		orderID = &id
	}
	return finance.RestoreTransaction(
		kernel.UUIDFromGoogle(dto.ID), orderID, txType, dto.Category, dto.Description,
		amount, status, dto.CreatedAt, dto.VoidedAt,
	), nil
}
