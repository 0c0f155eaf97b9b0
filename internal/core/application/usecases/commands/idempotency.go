package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

type settlementScope interface {
	OrderRepoFactory
	IdempotencyRepoFactory
}

// claimIdempotencyKey records key for the running transaction. When the key
// was already used for the same operation on the same order, done is true
// and the current order is returned so the caller can answer without
// running the operation again. A key reused for anything else is rejected.
func claimIdempotencyKey(
	ctx context.Context,
	uow settlementScope,
	key string,
	operation string,
	orderID kernel.UUID,
) (*order.ServiceOrder, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	existing, err := uow.IdempotencyRepository().Claim(ctx, ports.IdempotencyRecord{
		Key:       key,
		Operation: operation,
		OrderID:   orderID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}

	if existing.Operation != operation || !existing.OrderID.IsEqual(orderID) {
		return nil, true, errs.NewValueIsInvalidError("idempotencyKey")
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, true, err
	}
	return o, true, nil
}
