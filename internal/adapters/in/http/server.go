package http

import (
	"context"
	"net/http"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/part"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by every command and query handler.
type Handler[C any, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

type orderCommand[C any] = Handler[C, *order.ServiceOrder]

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder         orderCommand[commands.CreateOrderCommand]
	UpdateOrderDetails  orderCommand[commands.UpdateOrderDetailsCommand]
	AddItem             orderCommand[commands.AddItemCommand]
	RemoveItem          orderCommand[commands.RemoveItemCommand]
	UpdateStatus        orderCommand[commands.UpdateStatusCommand]
	CompleteOrder       orderCommand[commands.CompleteOrderCommand]
	ReopenOrder         orderCommand[commands.ReopenOrderCommand]
	CancelOrder         orderCommand[commands.CancelOrderCommand]
	LoadChecklist       orderCommand[commands.LoadChecklistCommand]
	AddChecklistItem    orderCommand[commands.AddChecklistItemCommand]
	ToggleChecklistItem orderCommand[commands.ToggleChecklistItemCommand]
	TimeLog             orderCommand[commands.TimeLogCommand]
	AddNote             orderCommand[commands.AddNoteCommand]
	RegisterPart        Handler[commands.RegisterPartCommand, *part.Part]
	ReceiveStock        Handler[commands.ReceiveStockCommand, *part.StockMovement]

	GetOrder           Handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders         Handler[queries.ListOrdersQuery, []queries.OrderSummary]
	ListLowStockParts  Handler[queries.ListLowStockPartsQuery, []queries.PartView]
	ListStockMovements Handler[queries.ListStockMovementsQuery, []queries.StockMovementView]
	ListTransactions   Handler[queries.ListTransactionsQuery, []queries.TransactionView]
}

// Server implements ServerInterface on top of the application handlers.
type Server struct {
	h   Handlers
	now func() time.Time
}

var _ ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{
		h:   h,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func orderID(id openapi_types.UUID) kernel.UUID {
	return kernel.UUIDFromGoogle(id)
}

func respondOrder(ctx echo.Context, code int, o *order.ServiceOrder, err error) error {
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(code, toOrder(o))
}

func bindBody(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		st, err := order.StatusFromString(string(*params.Status))
		if err != nil {
			return badRequest(ctx, err)
		}
		status = &st
	}
	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return badRequest(ctx, err)
	}

	summaries, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderSummaries(summaries))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	duration := 0
	if body.EstimatedDuration != nil {
		duration = *body.EstimatedDuration
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.BoatId, body.Description, duration)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusCreated, o, err)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID(id))
	if err != nil {
		return badRequest(ctx, err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, fromOrderView(view))
}

// UpdateOrderDetails handles PATCH /api/v1/orders/{orderId}.
func (s *Server) UpdateOrderDetails(ctx echo.Context, id openapi_types.UUID) error {
	var body OrderDetailsPatch
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID(id), order.DetailsPatch{
		Description:       body.Description,
		Diagnosis:         body.Diagnosis,
		TechnicianName:    body.TechnicianName,
		ScheduledAt:       body.ScheduledAt,
		EstimatedDuration: body.EstimatedDuration,
	})
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.UpdateOrderDetails.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// AddItem handles POST /api/v1/orders/{orderId}/items.
func (s *Server) AddItem(ctx echo.Context, id openapi_types.UUID) error {
	var body NewItem
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	kind, err := order.ItemKindFromString(body.Kind)
	if err != nil {
		return badRequest(ctx, err)
	}
	price, err := kernel.MoneyFromString(body.UnitPrice)
	if err != nil {
		return badRequest(ctx, err)
	}
	var partID *kernel.UUID
	if body.PartId != nil {
		pid := kernel.UUIDFromGoogle(*body.PartId)
		partID = &pid
	}
	description := ""
	if body.Description != nil {
		description = *body.Description
	}

	cmd, err := commands.NewAddItemCommand(orderID(id), kind, partID, description, body.Quantity, price)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.AddItem.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// RemoveItem handles DELETE /api/v1/orders/{orderId}/items/{itemId}.
func (s *Server) RemoveItem(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error {
	cmd, err := commands.NewRemoveItemCommand(orderID(id), kernel.UUIDFromGoogle(itemID))
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.RemoveItem.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// UpdateStatus handles PUT /api/v1/orders/{orderId}/status. COMPLETED and
// CANCELED are rejected by the domain with 409; they have their own routes.
func (s *Server) UpdateStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body StatusChange
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	status, err := order.StatusFromString(string(body.Status))
	if err != nil {
		return badRequest(ctx, err)
	}
	cmd, err := commands.NewUpdateStatusCommand(orderID(id), status)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.UpdateStatus.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func idempotencyKey(params IdempotencyParams) string {
	if params.IdempotencyKey == nil {
		return ""
	}
	return *params.IdempotencyKey
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, id openapi_types.UUID, params IdempotencyParams) error {
	cmd, err := commands.NewCompleteOrderCommand(orderID(id), idempotencyKey(params))
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// ReopenOrder handles POST /api/v1/orders/{orderId}/reopen.
func (s *Server) ReopenOrder(ctx echo.Context, id openapi_types.UUID, params IdempotencyParams) error {
	cmd, err := commands.NewReopenOrderCommand(orderID(id), idempotencyKey(params))
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.ReopenOrder.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, id openapi_types.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(orderID(id))
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.CancelOrder.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) LoadChecklist(ctx echo.Context, id openapi_types.UUID) error {
	var body ChecklistTemplate
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	cmd, err := commands.NewLoadChecklistCommand(orderID(id), body.Labels)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.LoadChecklist.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) AddChecklistItem(ctx echo.Context, id openapi_types.UUID) error {
	var body NewChecklistItem
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	cmd, err := commands.NewAddChecklistItemCommand(orderID(id), body.Label)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.AddChecklistItem.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) ToggleChecklistItem(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error {
	cmd, err := commands.NewToggleChecklistItemCommand(orderID(id), kernel.UUIDFromGoogle(itemID))
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.ToggleChecklistItem.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) StartTimeLog(ctx echo.Context, id openapi_types.UUID) error {
	cmd, err := commands.NewStartTimeLogCommand(orderID(id), s.now())
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.TimeLog.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) StopTimeLog(ctx echo.Context, id openapi_types.UUID) error {
	cmd, err := commands.NewStopTimeLogCommand(orderID(id), s.now())
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.TimeLog.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

func (s *Server) AddNote(ctx echo.Context, id openapi_types.UUID) error {
	var body NewNote
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	author := ""
	if body.Author != nil {
		author = *body.Author
	}
	cmd, err := commands.NewAddNoteCommand(orderID(id), body.Text, author)
	if err != nil {
		return badRequest(ctx, err)
	}
	o, err := s.h.AddNote.Handle(ctx.Request().Context(), cmd)
	return respondOrder(ctx, http.StatusOK, o, err)
}

// RegisterPart handles POST /api/v1/parts.
func (s *Server) RegisterPart(ctx echo.Context) error {
	var body NewPart
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	price, err := kernel.MoneyFromString(body.Price)
	if err != nil {
		return badRequest(ctx, err)
	}
	cost, err := kernel.MoneyFromString(body.Cost)
	if err != nil {
		return badRequest(ctx, err)
	}
	minStock := 0
	if body.MinStock != nil {
		minStock = *body.MinStock
	}

	cmd, err := commands.NewRegisterPartCommand(kernel.NewUUID(), body.Sku, body.Name, price, cost, minStock)
	if err != nil {
		return badRequest(ctx, err)
	}
	p, err := s.h.RegisterPart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toPart(p))
}

// ListLowStockParts handles GET /api/v1/parts/low-stock.
func (s *Server) ListLowStockParts(ctx echo.Context) error {
	parts, err := s.h.ListLowStockParts.Handle(ctx.Request().Context(), queries.NewListLowStockPartsQuery())
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParts(parts))
}

// ReceiveStock handles POST /api/v1/parts/{partId}/receipts.
func (s *Server) ReceiveStock(ctx echo.Context, partID openapi_types.UUID) error {
	var body StockReceipt
	if err := bindBody(ctx, &body); err != nil {
		return badRequest(ctx, err)
	}
	note := ""
	if body.Note != nil {
		note = *body.Note
	}
	cmd, err := commands.NewReceiveStockCommand(kernel.UUIDFromGoogle(partID), body.Quantity, note)
	if err != nil {
		return badRequest(ctx, err)
	}
	mv, err := s.h.ReceiveStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toStockMovement(mv))
}

// ListStockMovements handles GET /api/v1/parts/{partId}/movements.
func (s *Server) ListStockMovements(ctx echo.Context, partID openapi_types.UUID) error {
	query, err := queries.NewListStockMovementsQuery(kernel.UUIDFromGoogle(partID))
	if err != nil {
		return badRequest(ctx, err)
	}
	movements, err := s.h.ListStockMovements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toStockMovements(movements))
}

// ListTransactions handles GET /api/v1/transactions.
func (s *Server) ListTransactions(ctx echo.Context, params ListTransactionsParams) error {
	var filter *kernel.UUID
	if params.OrderId != nil {
		id := kernel.UUIDFromGoogle(*params.OrderId)
		filter = &id
	}
	query, err := queries.NewListTransactionsQuery(filter)
	if err != nil {
		return badRequest(ctx, err)
	}
	txs, err := s.h.ListTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransactions(txs))
}
