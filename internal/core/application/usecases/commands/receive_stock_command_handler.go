package commands

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/part"
)

type ReceiveStockCommandHandler struct {
	uowFactory PartUoWFactory
}

func NewReceiveStockCommandHandler(uowFactory PartUoWFactory) ReceiveStockCommandHandler {
	return ReceiveStockCommandHandler{uowFactory: uowFactory}
}

// Handle credits the part with a STOCK_RECEIPT movement and returns the
// movement that was written.
func (h ReceiveStockCommandHandler) Handle(ctx context.Context, cmd ReceiveStockCommand) (*part.StockMovement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.PartStockLedger()
	if _, err := ledger.Lock(ctx, []kernel.UUID{cmd.PartID()}); err != nil {
		return nil, err
	}

	movement, err := ledger.Credit(ctx, cmd.PartID(), cmd.Quantity(), nil, part.ReasonStockReceipt, cmd.Note())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}
