package commands

import (
	"context"
)

type PurgeIdempotencyKeysCommandHandler struct {
	uowFactory IdempotencyUoWFactory
}

func NewPurgeIdempotencyKeysCommandHandler(uowFactory IdempotencyUoWFactory) PurgeIdempotencyKeysCommandHandler {
	return PurgeIdempotencyKeysCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of removed keys.
func (h PurgeIdempotencyKeysCommandHandler) Handle(ctx context.Context, cmd PurgeIdempotencyKeysCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.IdempotencyRepository().DeleteOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
