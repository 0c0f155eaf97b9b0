package queries

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderView is the read model of a full order. Commands return the aggregate
// and the HTTP adapter renders it through NewOrderView, so a command response
// and a GetOrder response have the same shape.
type OrderView struct {
	ID                kernel.UUID
	BoatID            string
	Description       string
	Diagnosis         string
	TechnicianName    string
	ScheduledAt       *time.Time
	EstimatedDuration int
	Status            string
	TotalValue        kernel.Money
	CompletionCycle   int
	Version           int
	Locked            bool
	Items             []ItemView
	Checklist         []ChecklistItemView
	TimeLogs          []TimeLogView
	Notes             []NoteView
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ItemView struct {
	ID          kernel.UUID
	Kind        string
	PartID      *kernel.UUID
	Description string
	Quantity    int
	UnitPrice   kernel.Money
	Total       kernel.Money
}

type ChecklistItemView struct {
	ID      kernel.UUID
	Label   string
	Checked bool
}

type TimeLogView struct {
	ID    kernel.UUID
	Start time.Time
	End   *time.Time
}

type NoteView struct {
	ID        kernel.UUID
	Text      string
	Author    string
	CreatedAt time.Time
}

func NewOrderView(o *order.ServiceOrder) OrderView {
	view := OrderView{
		ID:                o.ID(),
		BoatID:            o.BoatID(),
		Description:       o.Description(),
		Diagnosis:         o.Diagnosis(),
		TechnicianName:    o.TechnicianName(),
		ScheduledAt:       o.ScheduledAt(),
		EstimatedDuration: o.EstimatedDuration(),
		Status:            o.Status().String(),
		TotalValue:        o.TotalValue(),
		CompletionCycle:   o.CompletionCycle(),
		Version:           o.Version(),
		Locked:            o.IsLocked(),
		Items:             make([]ItemView, 0, len(o.Items())),
		Checklist:         make([]ChecklistItemView, 0, len(o.Checklist())),
		TimeLogs:          make([]TimeLogView, 0, len(o.TimeLogs())),
		Notes:             make([]NoteView, 0, len(o.Notes())),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}

	for _, item := range o.Items() {
		view.Items = append(view.Items, ItemView{
			ID:          item.ID(),
			Kind:        item.Kind().String(),
			PartID:      item.PartID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Total:       item.Total(),
		})
	}
	for _, c := range o.Checklist() {
		view.Checklist = append(view.Checklist, ChecklistItemView{ID: c.ID(), Label: c.Label(), Checked: c.Checked()})
	}
	for _, l := range o.TimeLogs() {
		view.TimeLogs = append(view.TimeLogs, TimeLogView{ID: l.ID(), Start: l.Start(), End: l.End()})
	}
	for _, n := range o.Notes() {
		view.Notes = append(view.Notes, NoteView{ID: n.ID(), Text: n.Text(), Author: n.Author(), CreatedAt: n.CreatedAt()})
	}
	return view
}
