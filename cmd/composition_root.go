package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/notifier"
	"workshop/internal/adapters/out/orderlock"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/outboxrepo"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	redis      *redis.Client
	locker     ports.OrderLocker
	settlement services.Settlement
}

// NewCompositionRoot connects the optional infrastructure. With REDIS_ADDR
// set the order lock is shared through Redis and Redis must answer a ping.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		settlement: services.NewSettlement(),
	}

	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is empty, order locks are local to this process")
		root.locker = orderlock.NewLocalOrderLocker(cfg.LockWait)
		return root, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
	}
	root.redis = client
	root.locker = orderlock.NewRedisOrderLocker(client, cfg.LockTTL, cfg.LockWait)
	return root, nil
}

func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settlementUoWs() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partUoWs() commands.PartUoWFactory {
	return FuncPartUoWFactory(func() commands.PartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	var f commands.OrderCatalogUoWFactory = FuncOrderCatalogUoWFactory(func() commands.OrderCatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddItemCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.settlementUoWs(), c.locker, c.settlement)
}

func (c *CompositionRoot) CreateReopenOrderCommandHandler() commands.ReopenOrderCommandHandler {
	return commands.NewReopenOrderCommandHandler(c.settlementUoWs(), c.locker, c.settlement)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.locker)
}

func (c *CompositionRoot) CreateLoadChecklistCommandHandler() commands.LoadChecklistCommandHandler {
	return commands.NewLoadChecklistCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateAddChecklistItemCommandHandler() commands.AddChecklistItemCommandHandler {
	return commands.NewAddChecklistItemCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateToggleChecklistItemCommandHandler() commands.ToggleChecklistItemCommandHandler {
	return commands.NewToggleChecklistItemCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateTimeLogCommandHandler() commands.TimeLogCommandHandler {
	return commands.NewTimeLogCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	return commands.NewAddNoteCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateRegisterPartCommandHandler() commands.RegisterPartCommandHandler {
	return commands.NewRegisterPartCommandHandler(c.partUoWs())
}

func (c *CompositionRoot) CreateReceiveStockCommandHandler() commands.ReceiveStockCommandHandler {
	return commands.NewReceiveStockCommandHandler(c.partUoWs())
}

// CreateGetOrderQueryHandler reads outside a transaction, through the same
// repository the commands use.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLowStockPartsQueryHandler() queries.ListLowStockPartsQueryHandler {
	return queries.NewListLowStockPartsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStockMovementsQueryHandler() queries.ListStockMovementsQueryHandler {
	return queries.NewListStockMovementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTransactionsQueryHandler() queries.ListTransactionsQueryHandler {
	return queries.NewListTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrderDetails:  c.CreateUpdateOrderDetailsCommandHandler(),
		AddItem:             c.CreateAddItemCommandHandler(),
		RemoveItem:          c.CreateRemoveItemCommandHandler(),
		UpdateStatus:        c.CreateUpdateStatusCommandHandler(),
		CompleteOrder:       c.CreateCompleteOrderCommandHandler(),
		ReopenOrder:         c.CreateReopenOrderCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		LoadChecklist:       c.CreateLoadChecklistCommandHandler(),
		AddChecklistItem:    c.CreateAddChecklistItemCommandHandler(),
		ToggleChecklistItem: c.CreateToggleChecklistItemCommandHandler(),
		TimeLog:             c.CreateTimeLogCommandHandler(),
		AddNote:             c.CreateAddNoteCommandHandler(),
		RegisterPart:        c.CreateRegisterPartCommandHandler(),
		ReceiveStock:        c.CreateReceiveStockCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		ListLowStockParts:   c.CreateListLowStockPartsQueryHandler(),
		ListStockMovements:  c.CreateListStockMovementsQueryHandler(),
		ListTransactions:    c.CreateListTransactionsQueryHandler(),
	})
}

func (c *CompositionRoot) createNotifier() ports.Notifier {
	if c.cfg.WebhookURL == "" {
		return notifier.NewLogNotifier(c.logger)
	}
	return notifier.NewWebhookNotifier(c.cfg.WebhookURL, c.cfg.WebhookTimeout)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	dispatchCmd, err := commands.NewDispatchNotificationsCommand(c.cfg.NotifyBatchSize, c.cfg.NotifyMaxAttempts)
	if err != nil {
		return nil, err
	}
	dispatchHandler := commands.NewDispatchNotificationsCommandHandler(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		c.createNotifier(),
	)

	var idempotencyUoWs commands.IdempotencyUoWFactory = FuncIdempotencyUoWFactory(func() commands.IdempotencyUoW {
		return c.uowFactory.Create()
	})
	purgeHandler := commands.NewPurgeIdempotencyKeysCommandHandler(idempotencyUoWs)

	return jobs.NewJobManager(
		jobs.NewNotificationDispatchJob(dispatchHandler, dispatchCmd, c.cfg.NotifySchedule, c.logger),
		jobs.NewIdempotencyCleanupJob(purgeHandler, c.cfg.IdempotencyTTL, c.cfg.IdempotencySchedule, c.logger),
	), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderCatalogUoWFactory func() commands.OrderCatalogUoW

func (f FuncOrderCatalogUoWFactory) Create() commands.OrderCatalogUoW {
	return f()
}

type FuncPartUoWFactory func() commands.PartUoW

func (f FuncPartUoWFactory) Create() commands.PartUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncIdempotencyUoWFactory func() commands.IdempotencyUoW

func (f FuncIdempotencyUoWFactory) Create() commands.IdempotencyUoW {
	return f()
}
