package commands

import (
	"context"

	"workshop/internal/core/domain/model/part"
)

type RegisterPartCommandHandler struct {
	uowFactory PartUoWFactory
}

func NewRegisterPartCommandHandler(uowFactory PartUoWFactory) RegisterPartCommandHandler {
	return RegisterPartCommandHandler{uowFactory: uowFactory}
}

// Handle validates the part through the domain constructor, so sku, name and
// minStock rules live in one place.
func (h RegisterPartCommandHandler) Handle(ctx context.Context, cmd RegisterPartCommand) (*part.Part, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := part.NewPart(cmd.PartID(), cmd.SKU(), cmd.Name(), cmd.Price(), cmd.Cost(), cmd.MinStock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartStockLedger().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
