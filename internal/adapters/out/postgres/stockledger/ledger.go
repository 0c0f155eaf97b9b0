package stockledger

import (
	"context"
	"errors"

	"workshop/internal/adapters/out/postgres/pgerr"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/part"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements ports.PartStockLedger. Every quantity change is
// a conditional UPDATE plus a movement INSERT on the same connection; when
// the ledger is bound to a transaction both land or neither does.
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

func (l *GormStockLedger) Add(ctx context.Context, p *part.Part) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Quantity() != 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	dto := partFromDomain(p)
	if err := l.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("sku", err)
		}
		return err
	}
	return nil
}

func (l *GormStockLedger) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartDTO
	if err := l.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("part", id.String())
		}
		return nil, err
	}
	return partToDomain(dto)
}

// Lock selects the parts FOR UPDATE ordered by id. PostgreSQL locks rows as
// they are returned, so the ORDER BY fixes the acquisition order.
func (l *GormStockLedger) Lock(ctx context.Context, ids []kernel.UUID) ([]*part.Part, error) {
	if len(ids) == 0 {
		return []*part.Part{}, nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []PartDTO
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	found := make(map[kernel.UUID]struct{}, len(dtos))
	parts := make([]*part.Part, 0, len(dtos))
	for _, dto := range dtos {
		p, err := partToDomain(dto)
		if err != nil {
			return nil, err
		}
		found[p.ID()] = struct{}{}
		parts = append(parts, p)
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, errs.NewObjectNotFoundError("part", id.String())
		}
	}
	return parts, nil
}

// Debit writes nothing and returns errs.InsufficientStockError when the part
// holds fewer than qty units at the moment of the UPDATE.
func (l *GormStockLedger) Debit(
	ctx context.Context,
	partID kernel.UUID,
	qty int,
	orderID kernel.UUID,
	reason part.Reason,
) (*part.StockMovement, error) {
	m, err := part.NewDebit(partID, qty, &orderID, reason)
	if err != nil {
		return nil, err
	}
	if err = l.Apply(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *GormStockLedger) Credit(
	ctx context.Context,
	partID kernel.UUID,
	qty int,
	orderID *kernel.UUID,
	reason part.Reason,
	note string,
) (*part.StockMovement, error) {
	m, err := part.NewCredit(partID, qty, orderID, reason, note)
	if err != nil {
		return nil, err
	}
	if err = l.Apply(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *GormStockLedger) Apply(ctx context.Context, m *part.StockMovement) error {
	if m == nil {
		return errs.NewValueIsRequiredError("movement")
	}

	db := l.db.WithContext(ctx)
	result := db.Model(&PartDTO{}).
		Where("id = ? AND quantity + ? >= 0", m.PartID().Bytes(), m.Delta()).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", m.Delta()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		available, err := l.CurrentQuantity(ctx, m.PartID())
		if err != nil {
			return err
		}
		return errs.NewInsufficientStockError(m.PartID().String(), m.Quantity(), available)
	}

	dto := movementFromDomain(m)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewVersionIsInvalidError("reversalOf", err)
		}
		return err
	}
	return nil
}

func (l *GormStockLedger) CurrentQuantity(ctx context.Context, partID kernel.UUID) (int, error) {
	var dto PartDTO
	err := l.db.WithContext(ctx).Select("quantity").First(&dto, "id = ?", partID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.NewObjectNotFoundError("part", partID.String())
	}
	if err != nil {
		return 0, err
	}
	return dto.Quantity, nil
}

func (l *GormStockLedger) OutstandingDebits(ctx context.Context, orderID kernel.UUID) ([]*part.StockMovement, error) {
	var dtos []MovementDTO
	err := l.db.WithContext(ctx).
		Where("order_id = ? AND reason = ?", orderID.Bytes(), part.ReasonOrderCompletion.String()).
		Where("NOT EXISTS (SELECT 1 FROM stock_movements r WHERE r.reversal_of = stock_movements.id)").
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	movements := make([]*part.StockMovement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := movementToDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}
