package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// IdempotencyRecord remembers that an operation ran for a client key.
type IdempotencyRecord struct {
	Key       string
	Operation string
	OrderID   kernel.UUID
	CreatedAt time.Time
}

type IdempotencyRepository interface {
	// Claim stores the record inside the current transaction. When the key is
	// already known it stores nothing and returns the existing record.
	Claim(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)

	// DeleteOlderThan removes expired keys and reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
