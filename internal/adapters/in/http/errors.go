package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOrderLocked):
		return http.StatusLocked
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrOrderBusy):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func details(err error) *map[string]any {
	var insufficient *errs.InsufficientStockError
	if errors.As(err, &insufficient) {
		return &map[string]any{
			"partId":    insufficient.PartID,
			"required":  insufficient.Required,
			"available": insufficient.Available,
		}
	}
	var transition *errs.InvalidStateTransitionError
	if errors.As(err, &transition) {
		return &map[string]any{"from": transition.From, "to": transition.To}
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]any, len(validationErrs))
		for _, fe := range validationErrs {
			fields[lowerFirst(fe.Field())] = fe.Tag()
		}
		return &map[string]any{"fields": fields}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// fail renders a handler error. Internal errors are logged by echo and hidden
// from the client.
func fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		return ctx.JSON(code, Error{Code: code, Message: http.StatusText(code)})
	}
	return ctx.JSON(code, Error{Code: code, Message: err.Error(), Details: details(err)})
}

// badRequest renders an error from binding or command construction. Every
// such error is the caller's fault, whatever its type.
func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
		Details: details(err),
	})
}

// HTTPErrorHandler renders echo's own errors (routing, parameter binding)
// in the same Error shape as handler failures.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = ctx.JSON(he.Code, Error{Code: he.Code, Message: fmt.Sprint(he.Message)})
		return
	}
	_ = fail(ctx, err)
}
