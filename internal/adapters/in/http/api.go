package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// OrderStatus is the wire name of an order status.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusQuotation  OrderStatus = "QUOTATION"
	OrderStatusApproved   OrderStatus = "APPROVED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Details *map[string]any `json:"details,omitempty"`
}

type NewOrder struct {
	BoatId            string `json:"boatId" validate:"required,max=64"`
	Description       string `json:"description" validate:"required"`
	EstimatedDuration *int   `json:"estimatedDuration,omitempty" validate:"omitempty,gte=0"`
}

type OrderDetailsPatch struct {
	Description       *string    `json:"description,omitempty"`
	Diagnosis         *string    `json:"diagnosis,omitempty"`
	TechnicianName    *string    `json:"technicianName,omitempty" validate:"omitempty,max=120"`
	ScheduledAt       *time.Time `json:"scheduledAt,omitempty"`
	EstimatedDuration *int       `json:"estimatedDuration,omitempty" validate:"omitempty,gte=0"`
}

type NewItem struct {
	Kind        string              `json:"kind" validate:"required,oneof=PART LABOR"`
	PartId      *openapi_types.UUID `json:"partId,omitempty"`
	Description *string             `json:"description,omitempty"`
	Quantity    int                 `json:"quantity" validate:"gte=1,lte=10000"`
	UnitPrice   string              `json:"unitPrice" validate:"required,money"`
}

type StatusChange struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type ChecklistTemplate struct {
	Labels []string `json:"labels" validate:"required,min=1,dive,required"`
}

type NewChecklistItem struct {
	Label string `json:"label" validate:"required"`
}

type NewNote struct {
	Text   string  `json:"text" validate:"required"`
	Author *string `json:"author,omitempty"`
}

type NewPart struct {
	Sku      string `json:"sku" validate:"required,max=64"`
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required,money"`
	Cost     string `json:"cost" validate:"required,money"`
	MinStock *int   `json:"minStock,omitempty" validate:"omitempty,gte=0"`
}

type StockReceipt struct {
	Quantity int     `json:"quantity" validate:"gte=1"`
	Note     *string `json:"note,omitempty"`
}

type Item struct {
	Id          openapi_types.UUID  `json:"id"`
	Kind        string              `json:"kind"`
	PartId      *openapi_types.UUID `json:"partId,omitempty"`
	Description string              `json:"description"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   string              `json:"unitPrice"`
	Total       string              `json:"total"`
}

type ChecklistItem struct {
	Id      openapi_types.UUID `json:"id"`
	Label   string             `json:"label"`
	Checked bool               `json:"checked"`
}

type TimeLog struct {
	Id    openapi_types.UUID `json:"id"`
	Start time.Time          `json:"start"`
	End   *time.Time         `json:"end,omitempty"`
}

type Note struct {
	Id        openapi_types.UUID `json:"id"`
	Text      string             `json:"text"`
	Author    string             `json:"author,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Order struct {
	Id                openapi_types.UUID `json:"id"`
	BoatId            string             `json:"boatId"`
	Description       string             `json:"description"`
	Diagnosis         string             `json:"diagnosis,omitempty"`
	TechnicianName    string             `json:"technicianName,omitempty"`
	ScheduledAt       *time.Time         `json:"scheduledAt,omitempty"`
	EstimatedDuration int                `json:"estimatedDuration"`
	Status            OrderStatus        `json:"status"`
	TotalValue        string             `json:"totalValue"`
	CompletionCycle   int                `json:"completionCycle"`
	Version           int                `json:"version"`
	Locked            bool               `json:"locked"`
	Items             []Item             `json:"items"`
	Checklist         []ChecklistItem    `json:"checklist"`
	TimeLogs          []TimeLog          `json:"timeLogs"`
	Notes             []Note             `json:"notes"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

type OrderSummary struct {
	Id             openapi_types.UUID `json:"id"`
	BoatId         string             `json:"boatId"`
	Description    string             `json:"description"`
	TechnicianName string             `json:"technicianName,omitempty"`
	ScheduledAt    *time.Time         `json:"scheduledAt,omitempty"`
	Status         OrderStatus        `json:"status"`
	TotalValue     string             `json:"totalValue"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type Part struct {
	Id       openapi_types.UUID `json:"id"`
	Sku      string             `json:"sku"`
	Name     string             `json:"name"`
	Quantity int                `json:"quantity"`
	MinStock int                `json:"minStock"`
	Price    string             `json:"price"`
	Cost     string             `json:"cost"`
}

type StockMovement struct {
	Id         openapi_types.UUID  `json:"id"`
	PartId     openapi_types.UUID  `json:"partId"`
	OrderId    *openapi_types.UUID `json:"orderId,omitempty"`
	Delta      int                 `json:"delta"`
	Reason     string              `json:"reason"`
	ReversalOf *openapi_types.UUID `json:"reversalOf,omitempty"`
	Note       string              `json:"note,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

type Transaction struct {
	Id          openapi_types.UUID  `json:"id"`
	OrderId     *openapi_types.UUID `json:"orderId,omitempty"`
	Type        string              `json:"type"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Amount      string              `json:"amount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	VoidedAt    *time.Time          `json:"voidedAt,omitempty"`
}

type ListOrdersParams struct {
	Status *OrderStatus `form:"status,omitempty" json:"status,omitempty"`
}

type ListTransactionsParams struct {
	OrderId *openapi_types.UUID `form:"orderId,omitempty" json:"orderId,omitempty"`
}

// IdempotencyParams carries the optional Idempotency-Key header of the
// complete and reopen operations.
type IdempotencyParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// ServerInterface lists every operation of openapi.yaml.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	UpdateOrderDetails(ctx echo.Context, orderId openapi_types.UUID) error
	AddItem(ctx echo.Context, orderId openapi_types.UUID) error
	RemoveItem(ctx echo.Context, orderId openapi_types.UUID, itemId openapi_types.UUID) error
	UpdateStatus(ctx echo.Context, orderId openapi_types.UUID) error
	CompleteOrder(ctx echo.Context, orderId openapi_types.UUID, params IdempotencyParams) error
	ReopenOrder(ctx echo.Context, orderId openapi_types.UUID, params IdempotencyParams) error
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	LoadChecklist(ctx echo.Context, orderId openapi_types.UUID) error
	AddChecklistItem(ctx echo.Context, orderId openapi_types.UUID) error
	ToggleChecklistItem(ctx echo.Context, orderId openapi_types.UUID, itemId openapi_types.UUID) error
	StartTimeLog(ctx echo.Context, orderId openapi_types.UUID) error
	StopTimeLog(ctx echo.Context, orderId openapi_types.UUID) error
	AddNote(ctx echo.Context, orderId openapi_types.UUID) error
	RegisterPart(ctx echo.Context) error
	ListLowStockParts(ctx echo.Context) error
	ReceiveStock(ctx echo.Context, partId openapi_types.UUID) error
	ListStockMovements(ctx echo.Context, partId openapi_types.UUID) error
	ListTransactions(ctx echo.Context, params ListTransactionsParams) error
}

// ServerInterfaceWrapper binds path, query and header parameters before
// handing the request to the ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &id)
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindIdempotencyKey(ctx echo.Context) (IdempotencyParams, error) {
	var params IdempotencyParams
	values, found := ctx.Request().Header[http.CanonicalHeaderKey("Idempotency-Key")]
	if !found {
		return params, nil
	}
	if n := len(values); n != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
	}
	var key string
	err := runtime.BindStyledParameterWithLocation("simple", false, "Idempotency-Key", runtime.ParamLocationHeader, values[0], &key)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
	}
	params.IdempotencyKey = &key
	return params, nil
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) withOrderID(ctx echo.Context, next func(openapi_types.UUID) error) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return next(orderID)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.GetOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) UpdateOrderDetails(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.UpdateOrderDetails(ctx, id) })
}

func (w *ServerInterfaceWrapper) AddItem(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.AddItem(ctx, id) })
}

func (w *ServerInterfaceWrapper) RemoveItem(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error {
		itemID, err := bindPathUUID(ctx, "itemId")
		if err != nil {
			return err
		}
		return w.Handler.RemoveItem(ctx, id, itemID)
	})
}

func (w *ServerInterfaceWrapper) UpdateStatus(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.UpdateStatus(ctx, id) })
}

func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error {
		params, err := bindIdempotencyKey(ctx)
		if err != nil {
			return err
		}
		return w.Handler.CompleteOrder(ctx, id, params)
	})
}

func (w *ServerInterfaceWrapper) ReopenOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error {
		params, err := bindIdempotencyKey(ctx)
		if err != nil {
			return err
		}
		return w.Handler.ReopenOrder(ctx, id, params)
	})
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.CancelOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) LoadChecklist(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.LoadChecklist(ctx, id) })
}

func (w *ServerInterfaceWrapper) AddChecklistItem(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.AddChecklistItem(ctx, id) })
}

func (w *ServerInterfaceWrapper) ToggleChecklistItem(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error {
		itemID, err := bindPathUUID(ctx, "itemId")
		if err != nil {
			return err
		}
		return w.Handler.ToggleChecklistItem(ctx, id, itemID)
	})
}

func (w *ServerInterfaceWrapper) StartTimeLog(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.StartTimeLog(ctx, id) })
}

func (w *ServerInterfaceWrapper) StopTimeLog(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.StopTimeLog(ctx, id) })
}

func (w *ServerInterfaceWrapper) AddNote(ctx echo.Context) error {
	return w.withOrderID(ctx, func(id openapi_types.UUID) error { return w.Handler.AddNote(ctx, id) })
}

func (w *ServerInterfaceWrapper) RegisterPart(ctx echo.Context) error {
	return w.Handler.RegisterPart(ctx)
}

func (w *ServerInterfaceWrapper) ListLowStockParts(ctx echo.Context) error {
	return w.Handler.ListLowStockParts(ctx)
}

func (w *ServerInterfaceWrapper) ReceiveStock(ctx echo.Context) error {
	partID, err := bindPathUUID(ctx, "partId")
	if err != nil {
		return err
	}
	return w.Handler.ReceiveStock(ctx, partID)
}

func (w *ServerInterfaceWrapper) ListStockMovements(ctx echo.Context) error {
	partID, err := bindPathUUID(ctx, "partId")
	if err != nil {
		return err
	}
	return w.Handler.ListStockMovements(ctx, partID)
}

func (w *ServerInterfaceWrapper) ListTransactions(ctx echo.Context) error {
	var params ListTransactionsParams
	if err := runtime.BindQueryParameter("form", true, false, "orderId", ctx.QueryParams(), &params.OrderId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return w.Handler.ListTransactions(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.PATCH(baseURL+"/orders/:orderId", w.UpdateOrderDetails)
	router.POST(baseURL+"/orders/:orderId/items", w.AddItem)
	router.DELETE(baseURL+"/orders/:orderId/items/:itemId", w.RemoveItem)
	router.PUT(baseURL+"/orders/:orderId/status", w.UpdateStatus)
	router.POST(baseURL+"/orders/:orderId/complete", w.CompleteOrder)
	router.POST(baseURL+"/orders/:orderId/reopen", w.ReopenOrder)
	router.POST(baseURL+"/orders/:orderId/cancel", w.CancelOrder)
	router.PUT(baseURL+"/orders/:orderId/checklist", w.LoadChecklist)
	router.POST(baseURL+"/orders/:orderId/checklist", w.AddChecklistItem)
	router.POST(baseURL+"/orders/:orderId/checklist/:itemId/toggle", w.ToggleChecklistItem)
	router.POST(baseURL+"/orders/:orderId/timelog/start", w.StartTimeLog)
	router.POST(baseURL+"/orders/:orderId/timelog/stop", w.StopTimeLog)
	router.POST(baseURL+"/orders/:orderId/notes", w.AddNote)
	router.POST(baseURL+"/parts", w.RegisterPart)
	router.GET(baseURL+"/parts/low-stock", w.ListLowStockParts)
	router.POST(baseURL+"/parts/:partId/receipts", w.ReceiveStock)
	router.GET(baseURL+"/parts/:partId/movements", w.ListStockMovements)
	router.GET(baseURL+"/transactions", w.ListTransactions)
}
