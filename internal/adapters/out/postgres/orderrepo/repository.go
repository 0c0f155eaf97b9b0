package orderrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects saved orders so the unit of work can move their
// events to the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its children.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row guarded by its version, then replaces the
// child rows. Children are small and owned by the order, so rewriting them
// keeps the mapping trivial.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"description":        dto.Description,
			"diagnosis":          dto.Diagnosis,
			"technician_name":    dto.TechnicianName,
			"scheduled_at":       dto.ScheduledAt,
			"estimated_duration": dto.EstimatedDuration,
			"status":             dto.Status,
			"total_value":        dto.TotalValue,
			"completion_cycle":   dto.CompletionCycle,
			"version":            aggregate.Version() + 1,
			"updated_at":         dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("version")
	}

	if err := r.replaceChildren(db, dto); err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock on the order that is held until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) load(db *gorm.DB, id kernel.UUID) (*order.ServiceOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position") }

	var dto OrderDTO
	err := db.
		Preload("Items", byPosition).
		Preload("Checklist", byPosition).
		Preload("TimeLogs", func(db *gorm.DB) *gorm.DB { return db.Order("started_at") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) replaceChildren(db *gorm.DB, dto OrderDTO) error {
	for _, model := range []any{&ItemDTO{}, &ChecklistItemDTO{}, &TimeLogDTO{}, &NoteDTO{}} {
		if err := db.Where("order_id = ?", dto.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Checklist) > 0 {
		if err := db.Create(&dto.Checklist).Error; err != nil {
			return err
		}
	}
	if len(dto.TimeLogs) > 0 {
		if err := db.Create(&dto.TimeLogs).Error; err != nil {
			return err
		}
	}
	if len(dto.Notes) > 0 {
		if err := db.Create(&dto.Notes).Error; err != nil {
			return err
		}
	}
	return nil
}
