// Package orderrepo persists service order aggregates: the order row and its
// item, checklist, time log and note rows.
package orderrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the service_orders row. TotalValue is stored for listings and
// always written from the aggregate, never edited on its own.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BoatID            string          `gorm:"type:varchar(64);not null;index"`
	Description       string          `gorm:"type:text;not null"`
	Diagnosis         string          `gorm:"type:text"`
	TechnicianName    string          `gorm:"type:varchar(120)"`
	ScheduledAt       *time.Time      `gorm:"type:timestamptz"`
	EstimatedDuration int             `gorm:"not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	TotalValue        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CompletionCycle   int             `gorm:"not null;default:0"`
	Version           int             `gorm:"not null"`
	CreatedAt         time.Time       `gorm:"type:timestamptz;autoCreateTime:false;not null"`
	UpdatedAt         time.Time       `gorm:"type:timestamptz;autoUpdateTime:false;not null"`

	Items     []ItemDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Checklist []ChecklistItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TimeLogs  []TimeLogDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Notes     []NoteDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "service_orders"
}

type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Kind        string          `gorm:"type:varchar(10);not null"`
	PartID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:text;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	UnitCost    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type ChecklistItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Label    string    `gorm:"type:text;not null"`
	Checked  bool      `gorm:"not null;default:false"`
}

func (ChecklistItemDTO) TableName() string {
	return "order_checklist_items"
}

type TimeLogDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt time.Time  `gorm:"type:timestamptz;not null"`
	EndedAt   *time.Time `gorm:"type:timestamptz"`
}

func (TimeLogDTO) TableName() string {
	return "order_time_logs"
}

type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	Author    string    `gorm:"type:varchar(120)"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime:false;not null"`
}

func (NoteDTO) TableName() string {
	return "order_notes"
}

// fromDomain maps the aggregate and its children. Children carry their
// position so that they load back in insertion order.
func fromDomain(o *order.ServiceOrder) OrderDTO {
	orderID := o.ID().Bytes()
	dto := OrderDTO{
		ID:                orderID,
		BoatID:            o.BoatID(),
		Description:       o.Description(),
		Diagnosis:         o.Diagnosis(),
		TechnicianName:    o.TechnicianName(),
		ScheduledAt:       o.ScheduledAt(),
		EstimatedDuration: o.EstimatedDuration(),
		Status:            o.Status().String(),
		TotalValue:        o.TotalValue().Decimal(),
		CompletionCycle:   o.CompletionCycle(),
		Version:           o.Version(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}

	for i, item := range o.Items() {
		var partID *uuid.UUID
		if id := item.PartID(); id != nil {
			raw := id.Bytes()
			partID = &raw
		}
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			Position:    i,
			Kind:        item.Kind().String(),
			PartID:      partID,
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Decimal(),
			UnitCost:    item.UnitCost().Decimal(),
		})
	}

	for i, c := range o.Checklist() {
		dto.Checklist = append(dto.Checklist, ChecklistItemDTO{
			ID:       c.ID().Bytes(),
			OrderID:  orderID,
			Position: i,
			Label:    c.Label(),
			Checked:  c.Checked(),
		})
	}

	for _, l := range o.TimeLogs() {
		dto.TimeLogs = append(dto.TimeLogs, TimeLogDTO{
			ID:        l.ID().Bytes(),
			OrderID:   orderID,
			StartedAt: l.Start(),
			EndedAt:   l.End(),
		})
	}

	for _, n := range o.Notes() {
		dto.Notes = append(dto.Notes, NoteDTO{
			ID:        n.ID().Bytes(),
			OrderID:   orderID,
			Text:      n.Text(),
			Author:    n.Author(),
			CreatedAt: n.CreatedAt(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.ServiceOrder, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		kind, kindErr := order.ItemKindFromString(it.Kind)
		if kindErr != nil {
			return nil, kindErr
		}
		var partID *kernel.UUID
		if it.PartID != nil {
			id := kernel.UUIDFromGoogle(*it.PartID)
			partID = &id
		}
		price, priceErr := kernel.NewMoney(it.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		cost, costErr := kernel.NewMoney(it.UnitCost)
		if costErr != nil {
			return nil, costErr
		}
		items = append(items, order.RestoreItem(
			kernel.UUIDFromGoogle(it.ID), kind, partID, it.Description, it.Quantity, price, cost,
		))
	}

	checklist := make([]*order.ChecklistItem, 0, len(dto.Checklist))
	for _, c := range dto.Checklist {
		checklist = append(checklist, order.RestoreChecklistItem(kernel.UUIDFromGoogle(c.ID), c.Label, c.Checked))
	}

	timeLogs := make([]*order.TimeLog, 0, len(dto.TimeLogs))
	for _, l := range dto.TimeLogs {
		timeLogs = append(timeLogs, order.RestoreTimeLog(kernel.UUIDFromGoogle(l.ID), l.StartedAt, l.EndedAt))
	}

	notes := make([]*order.Note, 0, len(dto.Notes))
	for _, n := range dto.Notes {
		notes = append(notes, order.RestoreNote(kernel.UUIDFromGoogle(n.ID), n.Text, n.Author, n.CreatedAt))
	}

	return order.RestoreServiceOrder(order.RestoreParams{
		ID:                kernel.UUIDFromGoogle(dto.ID),
		BoatID:            dto.BoatID,
		Description:       dto.Description,
		Diagnosis:         dto.Diagnosis,
		TechnicianName:    dto.TechnicianName,
		ScheduledAt:       dto.ScheduledAt,
		EstimatedDuration: dto.EstimatedDuration,
		Status:            status,
		Items:             items,
		Checklist:         checklist,
		TimeLogs:          timeLogs,
		Notes:             notes,
		CompletionCycle:   dto.CompletionCycle,
		Version:           dto.Version,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	}), nil
}
