package commands_test

import (
	"context"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.ServiceOrder)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.ServiceOrder)
	return o, args.Error(1)
}

type MockPartStockLedger struct{ mock.Mock }

func (m *MockPartStockLedger) Add(ctx context.Context, p *part.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartStockLedger) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*part.Part)
	return p, args.Error(1)
}

func (m *MockPartStockLedger) Lock(ctx context.Context, ids []kernel.UUID) ([]*part.Part, error) {
	args := m.Called(ctx, ids)
	parts, _ := args.Get(0).([]*part.Part)
	return parts, args.Error(1)
}

func (m *MockPartStockLedger) Debit(
	ctx context.Context,
	partID kernel.UUID,
	qty int,
	orderID kernel.UUID,
	reason part.Reason,
) (*part.StockMovement, error) {
	args := m.Called(ctx, partID, qty, orderID, reason)
	mv, _ := args.Get(0).(*part.StockMovement)
	return mv, args.Error(1)
}

func (m *MockPartStockLedger) Credit(
	ctx context.Context,
	partID kernel.UUID,
	qty int,
	orderID *kernel.UUID,
	reason part.Reason,
	note string,
) (*part.StockMovement, error) {
	args := m.Called(ctx, partID, qty, orderID, reason, note)
	mv, _ := args.Get(0).(*part.StockMovement)
	return mv, args.Error(1)
}

func (m *MockPartStockLedger) Apply(ctx context.Context, mv *part.StockMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockPartStockLedger) CurrentQuantity(ctx context.Context, partID kernel.UUID) (int, error) {
	args := m.Called(ctx, partID)
	return args.Int(0), args.Error(1)
}

func (m *MockPartStockLedger) OutstandingDebits(ctx context.Context, orderID kernel.UUID) ([]*part.StockMovement, error) {
	args := m.Called(ctx, orderID)
	mvs, _ := args.Get(0).([]*part.StockMovement)
	return mvs, args.Error(1)
}

type MockFinancialLedger struct{ mock.Mock }

func (m *MockFinancialLedger) Post(ctx context.Context, tx *finance.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFinancialLedger) Void(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFinancialLedger) ActiveForOrder(ctx context.Context, orderID kernel.UUID) (*finance.Transaction, error) {
	args := m.Called(ctx, orderID)
	tx, _ := args.Get(0).(*finance.Transaction)
	return tx, args.Error(1)
}

type MockIdempotencyRepository struct{ mock.Mock }

func (m *MockIdempotencyRepository) Claim(
	ctx context.Context,
	record ports.IdempotencyRecord,
) (*ports.IdempotencyRecord, error) {
	args := m.Called(ctx, record)
	existing, _ := args.Get(0).(*ports.IdempotencyRecord)
	return existing, args.Error(1)
}

func (m *MockIdempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartStockLedger() ports.PartStockLedger {
	args := m.Called()
	return args.Get(0).(ports.PartStockLedger)
}

func (m *MockUoW) FinancialLedger() ports.FinancialLedger {
	args := m.Called()
	return args.Get(0).(ports.FinancialLedger)
}

func (m *MockUoW) IdempotencyRepository() ports.IdempotencyRepository {
	args := m.Called()
	return args.Get(0).(ports.IdempotencyRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderCatalogUoWFactory struct{ mock.Mock }

func (m *MockOrderCatalogUoWFactory) Create() commands.OrderCatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderCatalogUoW)
}

type MockPartUoWFactory struct{ mock.Mock }

func (m *MockPartUoWFactory) Create() commands.PartUoW {
	args := m.Called()
	return args.Get(0).(commands.PartUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Acquire(ctx context.Context, orderID kernel.UUID) (ports.Lock, error) {
	args := m.Called(ctx, orderID)
	lock, _ := args.Get(0).(ports.Lock)
	return lock, args.Error(1)
}

type MockLock struct{ mock.Mock }

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockIdempotencyUoWFactory struct{ mock.Mock }

func (m *MockIdempotencyUoWFactory) Create() commands.IdempotencyUoW {
	args := m.Called()
	return args.Get(0).(commands.IdempotencyUoW)
}

type MockEventOutbox struct{ mock.Mock }

func (m *MockEventOutbox) FetchPending(ctx context.Context, limit int, maxAttempts int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit, maxAttempts)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockEventOutbox) MarkDispatched(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventOutbox) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
