package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, optionally only those in one status.
//
// Example:
//
//	status := order.InProgress
//	query, err := NewListOrdersQuery(&status)
//	summaries, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID             kernel.UUID
	BoatID         string
	Description    string
	TechnicianName string
	ScheduledAt    *time.Time
	Status         string
	TotalValue     kernel.Money
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
