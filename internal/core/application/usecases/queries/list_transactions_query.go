package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrListTransactionsQueryIsNotConstructed = errors.New(
	"ListTransactionsQuery must be created via NewListTransactionsQuery constructor",
)

// ListTransactionsQuery lists financial transactions, all of them or those
// of one order. Void transactions are included.
type ListTransactionsQuery struct {
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListTransactionsQuery(orderID *kernel.UUID) (ListTransactionsQuery, error) {
	q := ListTransactionsQuery{guard: guard.NewConstructorGuard()}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return ListTransactionsQuery{}, err
		}
		id := *orderID
		q.orderID = &id
	}
	return q, nil
}

func (q ListTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListTransactionsQueryIsNotConstructed)
}

func (q ListTransactionsQuery) OrderID() *kernel.UUID {
	return q.orderID
}

type TransactionView struct {
	ID          kernel.UUID
	OrderID     *kernel.UUID
	Type        string
	Category    string
	Description string
	Amount      kernel.Money
	Status      string
	CreatedAt   time.Time
	VoidedAt    *time.Time
}
