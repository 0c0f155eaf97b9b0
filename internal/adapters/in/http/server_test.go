package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc[C any, R any] func(ctx context.Context, in C) (R, error)

func (f handlerFunc[C, R]) Handle(ctx context.Context, in C) (R, error) {
	return f(ctx, in)
}

func newTestEcho(t *testing.T, h Handlers) *echo.Echo {
	t.Helper()
	e, err := NewEcho(NewServer(h), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func openOrder(t *testing.T) *order.ServiceOrder {
	t.Helper()
	o, err := order.NewServiceOrder(kernel.NewUUID(), "BOAT-7", "engine overhaul", 90)
	require.NoError(t, err)
	return o
}

func orderHandler[C any](o *order.ServiceOrder, err error) orderCommand[C] {
	return handlerFunc[C, *order.ServiceOrder](func(context.Context, C) (*order.ServiceOrder, error) {
		return o, err
	})
}

func Test_CreateOrderReturnsCreatedOrder(t *testing.T) {
	o := openOrder(t)
	var got commands.CreateOrderCommand
	e := newTestEcho(t, Handlers{
		CreateOrder: handlerFunc[commands.CreateOrderCommand, *order.ServiceOrder](
			func(_ context.Context, cmd commands.CreateOrderCommand) (*order.ServiceOrder, error) {
				got = cmd
				return o, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/orders", `{"boatId":"BOAT-7","description":"engine overhaul","estimatedDuration":90}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "BOAT-7", got.BoatID())
	assert.Equal(t, 90, got.EstimatedDuration())

	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, o.ID().Bytes(), body.Id)
	assert.Equal(t, OrderStatusPending, body.Status)
	assert.Equal(t, "0.00", body.TotalValue)
	assert.False(t, body.Locked)
	assert.NotNil(t, body.Items)
}

func Test_CreateOrderRejectsBodyThatBreaksTheDocument(t *testing.T) {
	called := false
	e := newTestEcho(t, Handlers{
		CreateOrder: handlerFunc[commands.CreateOrderCommand, *order.ServiceOrder](
			func(context.Context, commands.CreateOrderCommand) (*order.ServiceOrder, error) {
				called = true
				return nil, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/orders", `{"description":"no boat"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
	assert.Contains(t, decodeError(t, rec).Message, "request body")
}

func Test_AddItemRejectsMalformedMoney(t *testing.T) {
	e := newTestEcho(t, Handlers{AddItem: orderHandler[commands.AddItemCommand](nil, errors.New("must not be called"))})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/items",
		`{"kind":"LABOR","quantity":1,"unitPrice":"12.345"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_AddItemRejectsQuantityAboveLineLimit(t *testing.T) {
	e := newTestEcho(t, Handlers{AddItem: orderHandler[commands.AddItemCommand](nil, errors.New("must not be called"))})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/items",
		`{"kind":"LABOR","quantity":10001,"unitPrice":"1.00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_AddItemPassesPartReference(t *testing.T) {
	o := openOrder(t)
	partID := kernel.NewUUID()
	var got commands.AddItemCommand
	e := newTestEcho(t, Handlers{
		AddItem: handlerFunc[commands.AddItemCommand, *order.ServiceOrder](
			func(_ context.Context, cmd commands.AddItemCommand) (*order.ServiceOrder, error) {
				got = cmd
				return o, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/items",
		`{"kind":"PART","partId":"`+partID.String()+`","quantity":2,"unitPrice":"45.50"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, order.PartKind, got.Kind())
	require.NotNil(t, got.PartID())
	assert.True(t, partID.IsEqual(*got.PartID()))
	assert.Equal(t, "45.50", got.UnitPrice().String())
	assert.True(t, o.ID().IsEqual(got.OrderID()))
}

func Test_AddItemRejectsLaborWithPart(t *testing.T) {
	e := newTestEcho(t, Handlers{AddItem: orderHandler[commands.AddItemCommand](nil, errors.New("must not be called"))})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/items",
		`{"kind":"LABOR","partId":"`+kernel.NewUUID().String()+`","quantity":1,"unitPrice":"10"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, commands.ErrPartIDIsNotAllowed.Error())
}

func Test_ErrorsMapToStatusCodes(t *testing.T) {
	tests := map[string]struct {
		err  error
		code int
	}{
		"not found": {
			err:  errs.NewObjectNotFoundError("orderId", "x"),
			code: http.StatusNotFound,
		},
		"locked": {
			err:  errs.NewOrderLockedError("x", "COMPLETED"),
			code: http.StatusLocked,
		},
		"transition": {
			err:  errs.NewInvalidStateTransitionError("PENDING", "COMPLETED"),
			code: http.StatusConflict,
		},
		"stock": {
			err:  errs.NewInsufficientStockError("p", 3, 1),
			code: http.StatusConflict,
		},
		"stale version": {
			err:  errs.NewVersionIsInvalidError("version", nil),
			code: http.StatusConflict,
		},
		"busy": {
			err:  ports.ErrOrderBusy,
			code: http.StatusConflict,
		},
		"invalid key": {
			err:  errs.NewValueIsInvalidError("idempotencyKey"),
			code: http.StatusBadRequest,
		},
		"unexpected": {
			err:  errors.New("connection reset"),
			code: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho(t, Handlers{CancelOrder: orderHandler[commands.CancelOrderCommand](nil, tt.err)})

			rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/cancel", "")

			assert.Equal(t, tt.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
		})
	}
}

func Test_CompleteOrderReportsShortPart(t *testing.T) {
	var got commands.CompleteOrderCommand
	e := newTestEcho(t, Handlers{
		CompleteOrder: handlerFunc[commands.CompleteOrderCommand, *order.ServiceOrder](
			func(_ context.Context, cmd commands.CompleteOrderCommand) (*order.ServiceOrder, error) {
				got = cmd
				return nil, errs.NewInsufficientStockError("part-1", 3, 1)
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/complete", "",
		"Idempotency-Key", "req-42")

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "req-42", got.IdempotencyKey())
	body := decodeError(t, rec)
	require.NotNil(t, body.Details)
	details := *body.Details
	assert.Equal(t, "part-1", details["partId"])
	assert.InDelta(t, 3, details["required"], 0)
	assert.InDelta(t, 1, details["available"], 0)
}

func Test_ReopenOrderWithoutKey(t *testing.T) {
	o := openOrder(t)
	var got commands.ReopenOrderCommand
	e := newTestEcho(t, Handlers{
		ReopenOrder: handlerFunc[commands.ReopenOrderCommand, *order.ServiceOrder](
			func(_ context.Context, cmd commands.ReopenOrderCommand) (*order.ServiceOrder, error) {
				got = cmd
				return o, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/reopen", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.IdempotencyKey())
}

func Test_UpdateStatusParsesWireName(t *testing.T) {
	o := openOrder(t)
	var got commands.UpdateStatusCommand
	e := newTestEcho(t, Handlers{
		UpdateStatus: handlerFunc[commands.UpdateStatusCommand, *order.ServiceOrder](
			func(_ context.Context, cmd commands.UpdateStatusCommand) (*order.ServiceOrder, error) {
				got = cmd
				return o, nil
			}),
	})

	rec := do(e, http.MethodPut, "/api/v1/orders/"+o.ID().String()+"/status", `{"status":"IN_PROGRESS"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, order.InProgress, got.Status())

	rec = do(e, http.MethodPut, "/api/v1/orders/"+o.ID().String()+"/status", `{"status":"ARCHIVED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_MalformedPathIDIsBadRequest(t *testing.T) {
	e := newTestEcho(t, Handlers{GetOrder: handlerFunc[queries.GetOrderQuery, queries.OrderView](
		func(context.Context, queries.GetOrderQuery) (queries.OrderView, error) {
			return queries.OrderView{}, errors.New("must not be called")
		})})

	rec := do(e, http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetOrderRendersView(t *testing.T) {
	o := openOrder(t)
	_, err := o.AddNote("customer called", "front desk")
	require.NoError(t, err)
	e := newTestEcho(t, Handlers{GetOrder: handlerFunc[queries.GetOrderQuery, queries.OrderView](
		func(context.Context, queries.GetOrderQuery) (queries.OrderView, error) {
			return queries.NewOrderView(o), nil
		})})

	rec := do(e, http.MethodGet, "/api/v1/orders/"+o.ID().String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Notes, 1)
	assert.Equal(t, "front desk", body.Notes[0].Author)
}

func Test_ListOrdersFiltersByStatus(t *testing.T) {
	calls := 0
	e := newTestEcho(t, Handlers{ListOrders: handlerFunc[queries.ListOrdersQuery, []queries.OrderSummary](
		func(context.Context, queries.ListOrdersQuery) ([]queries.OrderSummary, error) {
			calls++
			return []queries.OrderSummary{{
				ID:         kernel.NewUUID(),
				BoatID:     "BOAT-1",
				Status:     "APPROVED",
				TotalValue: kernel.MustMoney("10"),
			}}, nil
		})})

	rec := do(e, http.MethodGet, "/api/v1/orders?status=APPROVED", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body []OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "10.00", body[0].TotalValue)

	rec = do(e, http.MethodGet, "/api/v1/orders?status=LOST", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, calls)
}

func Test_SwaggerServesDocument(t *testing.T) {
	e := newTestEcho(t, Handlers{})

	rec := do(e, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CompleteOrder")
}

func Test_Health(t *testing.T) {
	e := newTestEcho(t, Handlers{})

	rec := do(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
