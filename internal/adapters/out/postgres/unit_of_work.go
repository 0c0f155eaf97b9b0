// Package postgres provides the GORM-based Unit of Work for the workshop.
// One UnitOfWork wraps one database transaction; every repository and ledger
// obtained from it after Begin runs inside that transaction.
//
// Orders saved through the unit of work are tracked. On Commit their pending
// lifecycle events are written to the outbox before the transaction commits,
// so an event exists if and only if the change it describes was committed.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	// ... change o, debit stock, post income
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// changes nothing, which is what makes the deferred Rollback safe.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workshop/internal/adapters/out/postgres/financeledger"
	"workshop/internal/adapters/out/postgres/idempotencyrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/outboxrepo"
	"workshop/internal/adapters/out/postgres/stockledger"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record lifecycle events.
type eventSource interface {
	PullEvents() []order.Event
}

// EventPayload is the JSON body stored in the outbox and sent to webhooks.
type EventPayload struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	BoatID     string    `json:"boatId,omitempty"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	TotalValue string    `json:"totalValue"`
	OccurredAt time.Time `json:"occurredAt"`
}

// GormUnitOfWorkFactory creates one UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use; each goroutine creates its
// own through the factory.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. A second Begin on the same instance is a
// no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit moves the events of tracked orders to the outbox and commits.
// If writing the outbox fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PartStockLedger() ports.PartStockLedger {
	return stockledger.NewGormStockLedger(uow.conn())
}

func (uow *GormUnitOfWork) FinancialLedger() ports.FinancialLedger {
	return financeledger.NewGormFinancialLedger(uow.conn())
}

func (uow *GormUnitOfWork) IdempotencyRepository() ports.IdempotencyRepository {
	return idempotencyrepo.NewGormIdempotencyRepository(uow.conn())
}

// TrackAggregate is called by repositories after an aggregate is written.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the transaction when one is open, the pool otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	var messages []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		var boatID string
		if o, isOrder := tracked.Aggregate.(*order.ServiceOrder); isOrder {
			boatID = o.BoatID()
		}
		for _, e := range source.PullEvents() {
			payload, err := json.Marshal(EventPayload{
				ID:         e.ID.String(),
				Event:      e.Name,
				OrderID:    e.OrderID.String(),
				BoatID:     boatID,
				From:       e.From,
				To:         e.To,
				TotalValue: e.TotalValue,
				OccurredAt: e.OccurredAt,
			})
			if err != nil {
				return fmt.Errorf("encode %s event: %w", e.Name, err)
			}
			messages = append(messages, ports.OutboxMessage{
				ID:        e.ID,
				OrderID:   e.OrderID,
				Name:      e.Name,
				Payload:   payload,
				CreatedAt: e.OccurredAt,
			})
		}
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, messages); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}
