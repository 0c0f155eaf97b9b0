package commands

import (
	"errors"
	"time"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrPurgeIdempotencyKeysCommandIsNotConstructed = errors.New(
	"PurgeIdempotencyKeysCommand must be created via NewPurgeIdempotencyKeysCommand constructor",
)

// PurgeIdempotencyKeysCommand removes keys claimed before now minus TTL.
// A retry arriving after that is treated as a new request.
type PurgeIdempotencyKeysCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewPurgeIdempotencyKeysCommand(now time.Time, ttl time.Duration) (PurgeIdempotencyKeysCommand, error) {
	if ttl <= 0 {
		return PurgeIdempotencyKeysCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	return PurgeIdempotencyKeysCommand{
		cutoff: now.Add(-ttl),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeIdempotencyKeysCommand) Validate() error {
	return c.guard.Validate(ErrPurgeIdempotencyKeysCommandIsNotConstructed)
}

func (c PurgeIdempotencyKeysCommand) Cutoff() time.Time {
	return c.cutoff
}
