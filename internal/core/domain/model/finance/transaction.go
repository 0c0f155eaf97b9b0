package finance

import (
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

type Type string

const (
	Income  Type = "INCOME"
	Expense Type = "EXPENSE"
)

func (t Type) Validate() error {
	if t != Income && t != Expense {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid transaction type", string(t)))
	}
	return nil
}

func TypeFromString(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Validate()
}

type Status string

const (
	Paid    Status = "PAID"
	Pending Status = "PENDING"
	Void    Status = "VOID"
)

func (s Status) Validate() error {
	switch s {
	case Paid, Pending, Void:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid transaction status", string(s)))
	}
}

// Category and description used for income posted by an order completion.
const (
	CategoryServices = "Serviços"
	orderIncomeDesc  = "Recebimento OS #%s"
)

// Transaction is a permanent ledger record. Reversal voids it in place; no
// compensating rows are written and rows are never deleted.
type Transaction struct {
	id          kernel.UUID
	orderID     *kernel.UUID
	txType      Type
	category    string
	description string
	amount      kernel.Money
	status      Status
	createdAt   time.Time
	voidedAt    *time.Time
}

// NewTransaction builds a PAID or PENDING transaction.
func NewTransaction(
	txType Type,
	amount kernel.Money,
	status Status,
	orderID *kernel.UUID,
	category, description string,
) (*Transaction, error) {
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == Void {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("a transaction cannot be created %s", Void))
	}
	return &Transaction{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		txType:      txType,
		category:    strings.TrimSpace(category),
		description: strings.TrimSpace(description),
		amount:      amount,
		status:      status,
		createdAt:   time.Now().UTC(),
	}, nil
}

// NewOrderIncome builds the PAID income posted when an order completes.
func NewOrderIncome(orderID kernel.UUID, amount kernel.Money) (*Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return NewTransaction(Income, amount, Paid, &orderID, CategoryServices,
		fmt.Sprintf(orderIncomeDesc, orderID.String()[:8]))
}

func RestoreTransaction(
	id kernel.UUID,
	orderID *kernel.UUID,
	txType Type,
	category, description string,
	amount kernel.Money,
	status Status,
	createdAt time.Time,
	voidedAt *time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		orderID:     orderID,
		txType:      txType,
		category:    category,
		description: description,
		amount:      amount,
		status:      status,
		createdAt:   createdAt,
		voidedAt:    voidedAt,
	}
}

func (t *Transaction) ID() kernel.UUID {
	return t.id
}

func (t *Transaction) OrderID() *kernel.UUID {
	return t.orderID
}

func (t *Transaction) Type() Type {
	return t.txType
}

func (t *Transaction) Category() string {
	return t.category
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) Amount() kernel.Money {
	return t.amount
}

func (t *Transaction) Status() Status {
	return t.status
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Transaction) VoidedAt() *time.Time {
	return t.voidedAt
}

func (t *Transaction) IsVoid() bool {
	return t.status == Void
}

// MarkVoid voids the transaction. It reports false when it was already void,
// which callers treat as success.
func (t *Transaction) MarkVoid(at time.Time) bool {
	if t.status == Void {
		return false
	}
	at = at.UTC()
	t.status = Void
	t.voidedAt = &at
	return true
}
