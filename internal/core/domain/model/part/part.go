package part

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrPartIsNotConstructed = errors.New("Part must be created via NewPart constructor")

// Part is a catalog entry with an on-hand quantity. The quantity is a cached
// sum of the part's stock movements and is only ever changed together with a
// movement by the stock ledger.
type Part struct {
	id       kernel.UUID
	sku      string
	name     string
	quantity int
	price    kernel.Money
	cost     kernel.Money
	minStock int

	isConstructed bool
}

// NewPart registers a part with zero quantity. Stock enters through receipts.
func NewPart(id kernel.UUID, sku, name string, price, cost kernel.Money, minStock int) (*Part, error) {
	p := &Part{
		price:         price,
		cost:          cost,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setName(name),
		p.setMinStock(minStock),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func RestorePart(id kernel.UUID, sku, name string, quantity int, price, cost kernel.Money, minStock int) *Part {
	return &Part{
		id:            id,
		sku:           sku,
		name:          name,
		quantity:      quantity,
		price:         price,
		cost:          cost,
		minStock:      minStock,
		isConstructed: true,
	}
}

func (p *Part) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartIsNotConstructed
	}
	return nil
}

func (p *Part) ID() kernel.UUID {
	return p.id
}

func (p *Part) SKU() string {
	return p.sku
}

func (p *Part) Name() string {
	return p.name
}

func (p *Part) Quantity() int {
	return p.quantity
}

func (p *Part) Price() kernel.Money {
	return p.price
}

func (p *Part) Cost() kernel.Money {
	return p.cost
}

func (p *Part) MinStock() int {
	return p.minStock
}

// IsLowStock reports whether the part reached its reorder point.
func (p *Part) IsLowStock() bool {
	return p.quantity <= p.minStock
}

// CanDebit checks that qty units are available without changing anything.
func (p *Part) CanDebit(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	if p.quantity < qty {
		return errs.NewInsufficientStockError(p.id.String(), qty, p.quantity)
	}
	return nil
}

func (p *Part) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Part) setSKU(sku string) error {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Part) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Part) setMinStock(minStock int) error {
	if minStock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minStock", fmt.Errorf("%d is negative", minStock))
	}
	p.minStock = minStock
	return nil
}
