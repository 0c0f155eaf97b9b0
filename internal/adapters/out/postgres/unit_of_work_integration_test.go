package postgres_test

import (
	"context"
	"encoding/json"
	"testing"

	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/outboxrepo"
	"workshop/internal/adapters/out/postgres/pgtest"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries and the
// outbox written on commit.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(o.ChangeStatus(order.Quotation))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	pending, err := outboxrepo.NewGormOutboxRepository(suite.database.DB).FetchPending(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	byName := map[string]ports.OutboxMessage{}
	for _, m := range pending {
		byName[m.Name] = m
	}
	suite.Contains(byName, order.EventCreated)
	suite.Require().Contains(byName, order.EventStatusChanged)

	var payload postgres.EventPayload
	suite.Require().NoError(json.Unmarshal(byName[order.EventStatusChanged].Payload, &payload))
	suite.Equal(o.ID().String(), payload.OrderID)
	suite.Equal("boat-11", payload.BoatID)
	suite.Equal("PENDING", payload.From)
	suite.Equal("QUOTATION", payload.To)
	suite.Equal("0.00", payload.TotalValue)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.MessageDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_ClearsTrackedAggregates() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.AddChecklistItem("bilge pump")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.MessageDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count, "only the creation event is stored")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	err := suite.factory.Create().Commit(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommitChangesNothing() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_DispatchAndFailure() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	outbox := outboxrepo.NewGormOutboxRepository(suite.database.DB)
	pending, err := outbox.FetchPending(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)

	suite.Require().NoError(outbox.MarkDispatched(ctx, pending[0].ID))
	suite.Require().NoError(outbox.MarkFailed(ctx, pending[1].ID, "connection refused"))

	pending, err = outbox.FetchPending(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(1, pending[0].Attempts)

	suite.Require().NoError(outbox.MarkFailed(ctx, pending[0].ID, "connection refused"))
	pending, err = outbox.FetchPending(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Empty(pending, "messages past the attempt limit are parked")
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.ServiceOrder {
	o, err := order.NewServiceOrder(kernel.NewUUID(), "boat-11", "hull cleaning", 2)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
