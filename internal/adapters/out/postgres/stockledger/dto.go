// Package stockledger persists the parts catalog and the stock movements
// that are the only way a part's quantity changes.
package stockledger

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/part"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU       string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null;default:0;check:chk_parts_quantity_non_negative,quantity >= 0"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Cost      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	MinStock  int             `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"type:timestamptz;not null"`
}

func (PartDTO) TableName() string {
	return "parts"
}

// MovementDTO is append-only. ReversalOf is unique, so a completion debit
// can be reversed at most once.
type MovementDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PartID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Delta      int        `gorm:"not null"`
	Reason     string     `gorm:"type:varchar(32);not null"`
	ReversalOf *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Note       string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;autoCreateTime:false;not null"`

	Part PartDTO `gorm:"foreignKey:PartID;constraint:OnDelete:RESTRICT"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

func partFromDomain(p *part.Part) PartDTO {
	return PartDTO{
		ID:        p.ID().Bytes(),
		SKU:       p.SKU(),
		Name:      p.Name(),
		Quantity:  p.Quantity(),
		Price:     p.Price().Decimal(),
		Cost:      p.Cost().Decimal(),
		MinStock:  p.MinStock(),
		CreatedAt: time.Now().UTC(),
	}
}

func partToDomain(dto PartDTO) (*part.Part, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost)
	if err != nil {
		return nil, err
	}
	return part.RestorePart(kernel.UUIDFromGoogle(dto.ID), dto.SKU, dto.Name, dto.Quantity, price, cost, dto.MinStock), nil
}

func movementFromDomain(m *part.StockMovement) MovementDTO {
	return MovementDTO{
		ID:         m.ID().Bytes(),
		PartID:     m.PartID().Bytes(),
		OrderID:    optionalID(m.OrderID()),
		Delta:      m.Delta(),
		Reason:     m.Reason().String(),
		ReversalOf: optionalID(m.ReversalOf()),
		Note:       m.Note(),
		CreatedAt:  m.CreatedAt(),
	}
}

func movementToDomain(dto MovementDTO) (*part.StockMovement, error) {
	reason, err := part.ReasonFromString(dto.Reason)
	if err != nil {
		return nil, err
	}
	return part.RestoreStockMovement(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.PartID),
		restoreID(dto.OrderID),
		dto.Delta,
		reason,
		restoreID(dto.ReversalOf),
		dto.Note,
		dto.CreatedAt,
	), nil
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	restored := kernel.UUIDFromGoogle(*id)
	return &restored
}
