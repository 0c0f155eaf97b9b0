package services

import (
	"sort"
	"time"

	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"
	"workshop/internal/pkg/errs"
)

// Debit is one stock debit requested by a PART item of an order.
type Debit struct {
	ItemID   kernel.UUID
	PartID   kernel.UUID
	Quantity int
}

// CompletionPlan lists the ledger effects of a successful Complete.
type CompletionPlan struct {
	Debits []Debit
	Income *finance.Transaction
}

// ReopenPlan lists the ledger effects of a successful Reopen.
type ReopenPlan struct {
	Reversals []*part.StockMovement
	Void      *finance.Transaction
}

// Settlement decides the ledger effects of completing and reopening an order.
//
// It works on state the caller has already locked: the order row and every
// referenced part row. All checks run before the order changes status, so a
// failed plan leaves the order untouched and nothing needs to be undone.
//
// Business rules:
//   - Stock is checked per part against the sum of all items using that part.
//   - One debit is produced per PART item, in item order.
//   - One PAID income equal to the order total is posted per completion.
//   - Reopen reverses every outstanding completion debit and voids the
//     active income transaction.
type Settlement struct{}

func NewSettlement() Settlement {
	return Settlement{}
}

// RequiredParts returns the distinct parts referenced by an order, sorted so
// that callers lock them in a stable order.
func (s Settlement) RequiredParts(o *order.ServiceOrder) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.PartItems()))
	for _, item := range o.PartItems() {
		ids = append(ids, *item.PartID())
	}
	return sortedDistinct(ids)
}

// ReversalParts returns the distinct parts touched by the given movements, in
// the same order RequiredParts uses.
func (s Settlement) ReversalParts(movements []*part.StockMovement) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.PartID())
	}
	return sortedDistinct(ids)
}

// Complete validates stock for every PART item and, when everything is
// available, marks the order COMPLETED and returns the effects to apply.
//
// Errors, in the order they are checked:
//   - errs.InvalidStateTransitionError when the order is already terminal
//   - errs.ObjectNotFoundError when an item references an unknown part
//   - errs.InsufficientStockError for the first part (by id) that is short
func (s Settlement) Complete(o *order.ServiceOrder, parts []*part.Part) (CompletionPlan, error) {
	if err := o.Validate(); err != nil {
		return CompletionPlan{}, err
	}
	if _, err := o.Status().Complete(); err != nil {
		return CompletionPlan{}, err
	}

	byID := make(map[kernel.UUID]*part.Part, len(parts))
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return CompletionPlan{}, err
		}
		byID[p.ID()] = p
	}

	required := make(map[kernel.UUID]int)
	debits := make([]Debit, 0, len(o.PartItems()))
	for _, item := range o.PartItems() {
		partID := *item.PartID()
		required[partID] += item.Quantity()
		debits = append(debits, Debit{ItemID: item.ID(), PartID: partID, Quantity: item.Quantity()})
	}

	for _, partID := range s.RequiredParts(o) {
		p, ok := byID[partID]
		if !ok {
			return CompletionPlan{}, errs.NewObjectNotFoundError("partId", partID.String())
		}
		if err := p.CanDebit(required[partID]); err != nil {
			return CompletionPlan{}, err
		}
	}

	income, err := finance.NewOrderIncome(o.ID(), o.TotalValue())
	if err != nil {
		return CompletionPlan{}, err
	}

	if err = o.Complete(); err != nil {
		return CompletionPlan{}, err
	}

	return CompletionPlan{Debits: debits, Income: income}, nil
}

// Reopen builds the compensation for the last completion and moves the order
// back to IN_PROGRESS. outstanding are the completion debits of the order not
// reversed yet; active is its non-void transaction, if any.
func (s Settlement) Reopen(
	o *order.ServiceOrder,
	outstanding []*part.StockMovement,
	active *finance.Transaction,
) (ReopenPlan, error) {
	if err := o.Validate(); err != nil {
		return ReopenPlan{}, err
	}
	if _, err := o.Status().Reopen(); err != nil {
		return ReopenPlan{}, err
	}

	reversals := make([]*part.StockMovement, 0, len(outstanding))
	for _, m := range outstanding {
		if m.OrderID() == nil || !m.OrderID().IsEqual(o.ID()) {
			return ReopenPlan{}, errs.NewValueIsInvalidError("movement does not belong to order " + o.ID().String())
		}
		rev, err := part.NewReversal(m)
		if err != nil {
			return ReopenPlan{}, err
		}
		reversals = append(reversals, rev)
	}

	var toVoid *finance.Transaction
	if active != nil && active.MarkVoid(time.Now()) {
		toVoid = active
	}

	if err := o.Reopen(); err != nil {
		return ReopenPlan{}, err
	}

	return ReopenPlan{Reversals: reversals, Void: toVoid}, nil
}

func sortedDistinct(ids []kernel.UUID) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(ids))
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}
