package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderReader loads one order aggregate without locking it.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error)
}

// GetOrderQueryHandler reads the whole aggregate through the repository
// rather than raw SQL: the view needs the same derived values (total, lock
// flag) that the domain computes.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	return NewOrderView(o), nil
}
