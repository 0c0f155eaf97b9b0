package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when a ServiceOrder was not created
	// through NewServiceOrder or RestoreServiceOrder.
	ErrOrderIsNotConstructed = errors.New("ServiceOrder must be created via NewServiceOrder constructor")
)

// ServiceOrder is the aggregate root of a repair job ("OS").
//
// Invariants:
//   - TotalValue always equals the sum of item totals; it is computed from the
//     items and never stored on its own.
//   - While the status is terminal (COMPLETED or CANCELED) every mutation fails
//     with errs.OrderLockedError. Reopen is the only way back.
//   - At most one time log is open at a time.
//
// Ledger effects of Complete and Reopen (stock movements, financial
// transactions) are produced by services.Settlement; the aggregate only owns
// the state transition.
type ServiceOrder struct {
	id                kernel.UUID
	boatID            string
	description       string
	diagnosis         string
	technicianName    string
	scheduledAt       *time.Time
	estimatedDuration int
	status            Status

	items     []*Item
	checklist []*ChecklistItem
	timeLogs  []*TimeLog
	notes     []*Note

	// completionCycle counts successful Complete calls.
	completionCycle int
	version         int
	createdAt       time.Time
	updatedAt       time.Time

	events        []Event
	changed       bool
	isConstructed bool
}

// NewServiceOrder opens a PENDING order for a boat.
//
// estimatedDuration is expressed in hours and must not be negative.
func NewServiceOrder(id kernel.UUID, boatID string, description string, estimatedDuration int) (*ServiceOrder, error) {
	now := time.Now().UTC()
	o := &ServiceOrder{
		status:        Pending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBoatID(boatID),
		o.setDescription(description),
		o.setEstimatedDuration(estimatedDuration),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated, Unknown, Pending)
	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                kernel.UUID
	BoatID            string
	Description       string
	Diagnosis         string
	TechnicianName    string
	ScheduledAt       *time.Time
	EstimatedDuration int
	Status            Status
	Items             []*Item
	Checklist         []*ChecklistItem
	TimeLogs          []*TimeLog
	Notes             []*Note
	CompletionCycle   int
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreServiceOrder rebuilds an order loaded from storage. No events are
// recorded.
func RestoreServiceOrder(p RestoreParams) *ServiceOrder {
	return &ServiceOrder{
		id:                p.ID,
		boatID:            p.BoatID,
		description:       p.Description,
		diagnosis:         p.Diagnosis,
		technicianName:    p.TechnicianName,
		scheduledAt:       p.ScheduledAt,
		estimatedDuration: p.EstimatedDuration,
		status:            p.Status,
		items:             p.Items,
		checklist:         p.Checklist,
		timeLogs:          p.TimeLogs,
		notes:             p.Notes,
		completionCycle:   p.CompletionCycle,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
		isConstructed:     true,
	}
}

// Validate rejects zero values and nil pointers.
func (o *ServiceOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *ServiceOrder) IsEqual(other *ServiceOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *ServiceOrder) ID() kernel.UUID { return o.id }
func (o *ServiceOrder) BoatID() string { return o.boatID }
func (o *ServiceOrder) Description() string { return o.description }
func (o *ServiceOrder) Diagnosis() string { return o.diagnosis }
func (o *ServiceOrder) TechnicianName() string { return o.technicianName }
func (o *ServiceOrder) ScheduledAt() *time.Time { return o.scheduledAt }
func (o *ServiceOrder) EstimatedDuration() int { return o.estimatedDuration }
func (o *ServiceOrder) Status() Status { return o.status }
func (o *ServiceOrder) CompletionCycle() int { return o.completionCycle }
func (o *ServiceOrder) Version() int { return o.version }
func (o *ServiceOrder) CreatedAt() time.Time { return o.createdAt }
func (o *ServiceOrder) UpdatedAt() time.Time { return o.updatedAt }
func (o *ServiceOrder) IsLocked() bool { return o.status.IsTerminal() }

// Items returns the lines in insertion order. The slice is a copy.
func (o *ServiceOrder) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

func (o *ServiceOrder) Checklist() []*ChecklistItem {
	return append([]*ChecklistItem(nil), o.checklist...)
}

func (o *ServiceOrder) TimeLogs() []*TimeLog {
	return append([]*TimeLog(nil), o.timeLogs...)
}

func (o *ServiceOrder) Notes() []*Note {
	return append([]*Note(nil), o.notes...)
}

// TotalValue is the sum of quantity × unitPrice over all items.
func (o *ServiceOrder) TotalValue() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Total())
	}
	return total
}

// PartItems returns only the stock-consuming lines.
func (o *ServiceOrder) PartItems() []*Item {
	var parts []*Item
	for _, item := range o.items {
		if item.IsPart() {
			parts = append(parts, item)
		}
	}
	return parts
}

// OpenTimeLog returns the running interval, or nil.
func (o *ServiceOrder) OpenTimeLog() *TimeLog {
	for _, l := range o.timeLogs {
		if l.IsOpen() {
			return l
		}
	}
	return nil
}

// AddItem appends a validated line.
func (o *ServiceOrder) AddItem(item *Item) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	o.items = append(o.items, item)
	o.touch()
	return nil
}

// RemoveItem drops a line by id.
func (o *ServiceOrder) RemoveItem(itemID kernel.UUID) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.touch()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("itemId", itemID.String())
}

// DetailsPatch lists the descriptive fields an open order accepts. Nil
// fields are left unchanged.
type DetailsPatch struct {
	Description       *string
	Diagnosis         *string
	TechnicianName    *string
	ScheduledAt       *time.Time
	EstimatedDuration *int
}

// UpdateDetails applies a patch atomically: either every field is valid and
// applied, or nothing changes.
func (o *ServiceOrder) UpdateDetails(p DetailsPatch) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}

	next := *o
	var setters []error
	if p.Description != nil {
		setters = append(setters, next.setDescription(*p.Description))
	}
	if p.EstimatedDuration != nil {
		setters = append(setters, next.setEstimatedDuration(*p.EstimatedDuration))
	}
	if err := errors.Join(setters...); err != nil {
		return err
	}

	o.description = next.description
	o.estimatedDuration = next.estimatedDuration
	if p.Diagnosis != nil {
		o.diagnosis = strings.TrimSpace(*p.Diagnosis)
	}
	if p.TechnicianName != nil {
		o.technicianName = strings.TrimSpace(*p.TechnicianName)
	}
	if p.ScheduledAt != nil {
		at := p.ScheduledAt.UTC()
		o.scheduledAt = &at
	}
	o.touch()
	return nil
}

// ChangeStatus moves the order between the intermediate states.
//
// Errors:
//   - errs.OrderLockedError when the order is terminal
//   - errs.InvalidStateTransitionError when target is COMPLETED or CANCELED
func (o *ServiceOrder) ChangeStatus(target Status) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	next, err := o.status.ChangeTo(target)
	if err != nil {
		return err
	}
	if next == o.status {
		return nil
	}
	o.transition(EventStatusChanged, next)
	return nil
}

// Complete marks the order COMPLETED and opens a new completion cycle.
// Completing a terminal order is an InvalidStateTransitionError, not a lock
// error, so that a repeated Complete is reported as such.
func (o *ServiceOrder) Complete() error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.completionCycle++
	o.transition(EventCompleted, next)
	return nil
}

// Reopen moves a COMPLETED order back to IN_PROGRESS.
func (o *ServiceOrder) Reopen() error {
	next, err := o.status.Reopen()
	if err != nil {
		return err
	}
	o.transition(EventReopened, next)
	return nil
}

// Cancel moves an open order to CANCELED. Nothing was debited or posted
// before completion, so there is nothing to reverse.
func (o *ServiceOrder) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.transition(EventCanceled, next)
	return nil
}

// LoadChecklist replaces the checklist with fresh, unchecked items.
func (o *ServiceOrder) LoadChecklist(labels []string) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	items := make([]*ChecklistItem, 0, len(labels))
	var errList []error
	for _, label := range labels {
		item, err := NewChecklistItem(label)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.checklist = items
	o.touch()
	return nil
}

func (o *ServiceOrder) AddChecklistItem(label string) (*ChecklistItem, error) {
	if err := o.CheckMutable(); err != nil {
		return nil, err
	}
	item, err := NewChecklistItem(label)
	if err != nil {
		return nil, err
	}
	o.checklist = append(o.checklist, item)
	o.touch()
	return item, nil
}

func (o *ServiceOrder) ToggleChecklistItem(itemID kernel.UUID) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	for _, item := range o.checklist {
		if item.ID().IsEqual(itemID) {
			item.toggle()
			o.touch()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("checklistItemId", itemID.String())
}

// StartTimeLog opens an interval at the given time. It is a no-op when one
// is already open.
func (o *ServiceOrder) StartTimeLog(at time.Time) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	if o.OpenTimeLog() != nil {
		return nil
	}
	o.timeLogs = append(o.timeLogs, &TimeLog{id: kernel.NewUUID(), start: at.UTC()})
	o.touch()
	return nil
}

// StopTimeLog closes the open interval. It is a no-op when none is open.
func (o *ServiceOrder) StopTimeLog(at time.Time) error {
	if err := o.CheckMutable(); err != nil {
		return err
	}
	open := o.OpenTimeLog()
	if open == nil {
		return nil
	}
	end := at.UTC()
	if end.Before(open.start) {
		return errs.NewValueIsInvalidErrorWithCause("end",
			fmt.Errorf("%s is before interval start %s", end.Format(time.RFC3339), open.start.Format(time.RFC3339)))
	}
	open.end = &end
	o.touch()
	return nil
}

func (o *ServiceOrder) AddNote(text, author string) (*Note, error) {
	if err := o.CheckMutable(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.NewValueIsRequiredError("text")
	}
	note := &Note{
		id:        kernel.NewUUID(),
		text:      text,
		author:    strings.TrimSpace(author),
		createdAt: time.Now().UTC(),
	}
	o.notes = append(o.notes, note)
	o.touch()
	return note, nil
}

// PullEvents returns and clears the events recorded since the last call.
func (o *ServiceOrder) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// HasChanges reports whether a mutation touched the order since it was
// loaded or last persisted. No-op mutations leave it false.
func (o *ServiceOrder) HasChanges() bool {
	return o.changed
}

// MarkPersisted advances the version after a successful optimistic update.
func (o *ServiceOrder) MarkPersisted() {
	o.version++
	o.changed = false
}

// CheckMutable returns errs.OrderLockedError for terminal orders.
func (o *ServiceOrder) CheckMutable() error {
	if o.status.IsTerminal() {
		return errs.NewOrderLockedError(o.id.String(), o.status.String())
	}
	return nil
}

func (o *ServiceOrder) transition(event string, next Status) {
	prev := o.status
	o.status = next
	o.touch()
	o.record(event, prev, next)
}

func (o *ServiceOrder) record(name string, from, to Status) {
	o.events = append(o.events, Event{
		ID:         kernel.NewUUID(),
		Name:       name,
		OrderID:    o.id,
		From:       from.String(),
		To:         to.String(),
		TotalValue: o.TotalValue().String(),
		OccurredAt: o.updatedAt,
	})
}

func (o *ServiceOrder) touch() {
	o.updatedAt = time.Now().UTC()
	o.changed = true
}

func (o *ServiceOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ServiceOrder) setBoatID(boatID string) error {
	boatID = strings.TrimSpace(boatID)
	if boatID == "" {
		return errs.NewValueIsRequiredError("boatId")
	}
	o.boatID = boatID
	return nil
}

func (o *ServiceOrder) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *ServiceOrder) setEstimatedDuration(hours int) error {
	if hours < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDuration", fmt.Errorf("%d is negative", hours))
	}
	o.estimatedDuration = hours
	return nil
}
