// Package outboxrepo stores order lifecycle events until the notification
// job has delivered them.
package outboxrepo

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name         string     `gorm:"type:varchar(64);not null"`
	Payload      []byte     `gorm:"type:jsonb;not null"`
	Attempts     int        `gorm:"not null;default:0"`
	LastError    string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;autoCreateTime:false;not null;index"`
	DispatchedAt *time.Time `gorm:"type:timestamptz;index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append writes messages on the repository's connection. The unit of work
// calls it inside the order transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, MessageDTO{
			ID:        m.ID.Bytes(),
			OrderID:   m.OrderID.Bytes(),
			Name:      m.Name,
			Payload:   m.Payload,
			CreatedAt: m.CreatedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending returns undelivered messages oldest first, skipping those that
// already failed maxAttempts times.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int, maxAttempts int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL AND attempts < ?", maxAttempts).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:        kernel.UUIDFromGoogle(dto.ID),
			OrderID:   kernel.UUIDFromGoogle(dto.OrderID),
			Name:      dto.Name,
			Payload:   dto.Payload,
			Attempts:  dto.Attempts,
			CreatedAt: dto.CreatedAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("dispatched_at", time.Now().UTC()).Error
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
}
