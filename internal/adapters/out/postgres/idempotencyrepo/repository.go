// Package idempotencyrepo stores client idempotency keys for settlement
// commands.
package idempotencyrepo

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeyDTO struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Operation string    `gorm:"type:varchar(32);not null"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime:false;not null;index"`
}

func (KeyDTO) TableName() string {
	return "idempotency_keys"
}

type GormIdempotencyRepository struct {
	db *gorm.DB
}

func NewGormIdempotencyRepository(db *gorm.DB) *GormIdempotencyRepository {
	return &GormIdempotencyRepository{db: db}
}

// Claim inserts the key with ON CONFLICT DO NOTHING. If another transaction
// holds an uncommitted row with the same key, PostgreSQL blocks the insert
// until that transaction ends, so a concurrent retry sees the final outcome.
func (r *GormIdempotencyRepository) Claim(
	ctx context.Context,
	record ports.IdempotencyRecord,
) (*ports.IdempotencyRecord, error) {
	db := r.db.WithContext(ctx)
	dto := KeyDTO{
		Key:       record.Key,
		Operation: record.Operation,
		OrderID:   record.OrderID.Bytes(),
		CreatedAt: record.CreatedAt,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 1 {
		return nil, nil //nolint:nilnil // nil record means the key is new
	}

	var existing KeyDTO
	if err := db.First(&existing, "key = ?", record.Key).Error; err != nil {
		return nil, err
	}
	return &ports.IdempotencyRecord{
		Key:       existing.Key,
		Operation: existing.Operation,
		OrderID:   kernel.UUIDFromGoogle(existing.OrderID),
		CreatedAt: existing.CreatedAt,
	}, nil
}

func (r *GormIdempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&KeyDTO{})
	return result.RowsAffected, result.Error
}
