package order

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxItemQuantity is the largest quantity a single line may carry.
const MaxItemQuantity = 10000

// ItemKind separates stock-consuming parts from labor lines.
type ItemKind int

const (
	UnknownKind ItemKind = iota
	PartKind
	LaborKind
)

func (k ItemKind) String() string {
	switch k {
	case PartKind:
		return "PART"
	case LaborKind:
		return "LABOR"
	default:
		return "UNKNOWN"
	}
}

func (k ItemKind) Validate() error {
	if k != PartKind && k != LaborKind {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid item kind", k))
	}
	return nil
}

func ItemKindFromString(s string) (ItemKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PART":
		return PartKind, nil
	case "LABOR":
		return LaborKind, nil
	default:
		return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid item kind", s))
	}
}

// Item is a line of a service order. Items are never edited after creation;
// a wrong line is removed and added again while the order is still open.
type Item struct {
	id          kernel.UUID
	kind        ItemKind
	partID      *kernel.UUID
	description string
	quantity    int
	unitPrice   kernel.Money
	unitCost    kernel.Money

	isConstructed bool
}

// NewItem validates a line. partID must be set for PART lines and absent for
// LABOR lines; unitCost is kept only for PART lines.
func NewItem(
	kind ItemKind,
	partID *kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
	unitCost kernel.Money,
) (*Item, error) {
	item := &Item{
		id:            kernel.NewUUID(),
		kind:          kind,
		description:   strings.TrimSpace(description),
		unitPrice:     unitPrice,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setKindAndPart(kind, partID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	if kind == PartKind {
		item.unitCost = unitCost
	}

	return item, nil
}

// RestoreItem rebuilds a persisted line without re-running validation.
func RestoreItem(
	id kernel.UUID,
	kind ItemKind,
	partID *kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
	unitCost kernel.Money,
) *Item {
	return &Item{
		id:            id,
		kind:          kind,
		partID:        partID,
		description:   description,
		quantity:      quantity,
		unitPrice:     unitPrice,
		unitCost:      unitCost,
		isConstructed: true,
	}
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) Kind() ItemKind { return i.kind }
func (i *Item) PartID() *kernel.UUID { return i.partID }
func (i *Item) Description() string { return i.description }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) UnitCost() kernel.Money { return i.unitCost }
func (i *Item) IsPart() bool { return i.kind == PartKind }
func (i *Item) Total() kernel.Money { return i.unitPrice.Times(i.quantity) }

func (i *Item) setKindAndPart(kind ItemKind, partID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	switch kind {
	case PartKind:
		if partID == nil {
			return errs.NewValueIsRequiredError("partId")
		}
		if err := partID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("partId", err)
		}
		id := *partID
		i.partID = &id
	case LaborKind:
		if partID != nil {
			return errs.NewValueIsInvalidErrorWithCause("partId", errors.New("labor items must not reference a part"))
		}
	}
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}
