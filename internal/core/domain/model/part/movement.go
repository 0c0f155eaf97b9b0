package part

import (
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// Reason explains why a part's quantity moved.
type Reason string

const (
	ReasonOrderCompletion     Reason = "ORDER_COMPLETION"
	ReasonOrderReopenReversal Reason = "ORDER_REOPEN_REVERSAL"
	ReasonStockReceipt        Reason = "STOCK_RECEIPT"
)

func ReasonFromString(s string) (Reason, error) {
	r := Reason(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Reason) Validate() error {
	switch r {
	case ReasonOrderCompletion, ReasonOrderReopenReversal, ReasonStockReceipt:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason", fmt.Errorf("%q is not a valid movement reason", string(r)))
	}
}

// IsDebit reports whether movements with this reason take stock out.
func (r Reason) IsDebit() bool {
	return r == ReasonOrderCompletion
}

func (r Reason) String() string {
	return string(r)
}

// StockMovement is an immutable, signed change of a part's quantity.
// Movements are append-only; the sum of a part's deltas is its quantity.
type StockMovement struct {
	id         kernel.UUID
	partID     kernel.UUID
	orderID    *kernel.UUID
	delta      int
	reason     Reason
	reversalOf *kernel.UUID
	note       string
	createdAt  time.Time
}

// NewDebit builds a negative movement of qty units.
func NewDebit(partID kernel.UUID, qty int, orderID *kernel.UUID, reason Reason) (*StockMovement, error) {
	return newMovement(partID, -qty, qty, orderID, reason, nil, "")
}

// NewCredit builds a positive movement of qty units.
func NewCredit(partID kernel.UUID, qty int, orderID *kernel.UUID, reason Reason, note string) (*StockMovement, error) {
	return newMovement(partID, qty, qty, orderID, reason, nil, note)
}

// NewReversal builds the equal and opposite movement of m.
func NewReversal(m *StockMovement) (*StockMovement, error) {
	if m.reason != ReasonOrderCompletion {
		return nil, errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("only %s movements can be reversed, got %s", ReasonOrderCompletion, m.reason))
	}
	id := m.id
	return newMovement(m.partID, -m.delta, abs(m.delta), m.orderID, ReasonOrderReopenReversal, &id, "")
}

func RestoreStockMovement(
	id, partID kernel.UUID,
	orderID *kernel.UUID,
	delta int,
	reason Reason,
	reversalOf *kernel.UUID,
	note string,
	createdAt time.Time,
) *StockMovement {
	return &StockMovement{
		id:         id,
		partID:     partID,
		orderID:    orderID,
		delta:      delta,
		reason:     reason,
		reversalOf: reversalOf,
		note:       note,
		createdAt:  createdAt,
	}
}

func newMovement(
	partID kernel.UUID,
	delta, qty int,
	orderID *kernel.UUID,
	reason Reason,
	reversalOf *kernel.UUID,
	note string,
) (*StockMovement, error) {
	if err := partID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("partId", err)
	}
	if qty <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	if err := reason.Validate(); err != nil {
		return nil, err
	}
	if reason != ReasonStockReceipt && orderID == nil {
		return nil, errs.NewValueIsRequiredError("orderId")
	}
	return &StockMovement{
		id:         kernel.NewUUID(),
		partID:     partID,
		orderID:    orderID,
		delta:      delta,
		reason:     reason,
		reversalOf: reversalOf,
		note:       strings.TrimSpace(note),
		createdAt:  time.Now().UTC(),
	}, nil
}

func (m *StockMovement) ID() kernel.UUID { return m.id }
func (m *StockMovement) PartID() kernel.UUID { return m.partID }
func (m *StockMovement) OrderID() *kernel.UUID { return m.orderID }
func (m *StockMovement) Delta() int { return m.delta }
func (m *StockMovement) Reason() Reason { return m.reason }
func (m *StockMovement) ReversalOf() *kernel.UUID { return m.reversalOf }
func (m *StockMovement) Note() string { return m.note }
func (m *StockMovement) CreatedAt() time.Time { return m.createdAt }

// Quantity is the unsigned size of the movement.
func (m *StockMovement) Quantity() int {
	return abs(m.delta)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
