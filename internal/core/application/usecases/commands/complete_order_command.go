package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const (
	OperationComplete = "complete"
	OperationReopen   = "reopen"

	maxIdempotencyKeyLength = 128
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand settles an order: stock is debited for every PART
// line and one income transaction is posted. An optional idempotency key
// makes a retried request return the current order instead of failing.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID kernel.UUID, idempotencyKey string) (CompleteOrderCommand, error) {
	key, err := parseIdempotencyKey(idempotencyKey)
	if err = errors.Join(orderID.Validate(), err); err != nil {
		return CompleteOrderCommand{}, err
	}
	return CompleteOrderCommand{
		orderID:        orderID,
		idempotencyKey: key,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IdempotencyKey is empty when the caller sent none.
func (c CompleteOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func parseIdempotencyKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return "", errs.NewValueIsOutOfRangeError("idempotencyKey", len(key), 1, maxIdempotencyKeyLength)
	}
	return key, nil
}
