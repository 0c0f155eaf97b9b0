package commands

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrTimeLogCommandIsNotConstructed = errors.New(
		"TimeLogCommand must be created via NewStartTimeLogCommand or NewStopTimeLogCommand constructor",
	)
	ErrTimeIsRequired = errors.New("time is required")
)

type TimeLogAction int

const (
	StartTimeLog TimeLogAction = iota + 1
	StopTimeLog
)

// TimeLogCommand opens or closes the work interval of an order at a given
// instant. Starting while an interval is open, or stopping while none is,
// changes nothing.
type TimeLogCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  TimeLogAction
	at      time.Time

	guard guard.ConstructorGuard
}

func NewStartTimeLogCommand(orderID kernel.UUID, at time.Time) (TimeLogCommand, error) {
	return newTimeLogCommand(orderID, StartTimeLog, at)
}

func NewStopTimeLogCommand(orderID kernel.UUID, at time.Time) (TimeLogCommand, error) {
	return newTimeLogCommand(orderID, StopTimeLog, at)
}

func newTimeLogCommand(orderID kernel.UUID, action TimeLogAction, at time.Time) (TimeLogCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TimeLogCommand{}, err
	}
	if at.IsZero() {
		return TimeLogCommand{}, ErrTimeIsRequired
	}
	return TimeLogCommand{
		orderID: orderID,
		action:  action,
		at:      at.UTC(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TimeLogCommand) Validate() error {
	return c.guard.Validate(ErrTimeLogCommandIsNotConstructed)
}

func (c TimeLogCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TimeLogCommand) Action() TimeLogAction {
	return c.action
}

func (c TimeLogCommand) At() time.Time {
	return c.at
}
