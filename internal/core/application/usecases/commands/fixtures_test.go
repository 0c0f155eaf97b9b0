package commands_test

import (
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"

	"github.com/stretchr/testify/require"
)

func newPart(t *testing.T, qty int) *part.Part {
	t.Helper()
	return part.RestorePart(kernel.NewUUID(), "IMP-"+kernel.NewUUID().String()[:6], "impeller",
		qty, kernel.MustMoney("45.00"), kernel.MustMoney("20.00"), 1)
}

func newOrder(t *testing.T) *order.ServiceOrder {
	t.Helper()
	o, err := order.NewServiceOrder(kernel.NewUUID(), "boat-17", "cooling system service", 4)
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func withPartItem(t *testing.T, o *order.ServiceOrder, p *part.Part, qty int) {
	t.Helper()
	id := p.ID()
	item, err := order.NewItem(order.PartKind, &id, p.Name(), qty, p.Price(), p.Cost())
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
}

func withLaborItem(t *testing.T, o *order.ServiceOrder, hours int, rate string) {
	t.Helper()
	item, err := order.NewItem(order.LaborKind, nil, "labor", hours, kernel.MustMoney(rate), kernel.ZeroMoney())
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
}
