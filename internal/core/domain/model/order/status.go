package order

import (
	"fmt"
	"strings"

	"workshop/internal/pkg/errs"
)

// Status is the lifecycle state of a service order.
//
//	PENDING <-> QUOTATION <-> APPROVED <-> IN_PROGRESS ──Complete──> COMPLETED
//	   │             │            │             │  <──Reopen─────────┘
//	   └─────────────┴────Cancel──┴─────────────┴──> CANCELED
//
// The four intermediate states are freely settable among themselves. COMPLETED
// and CANCELED are terminal and reached only through Complete and Cancel;
// COMPLETED can go back to IN_PROGRESS only through Reopen.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Quotation
	Approved
	InProgress
	Completed
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Quotation:  "QUOTATION",
		Approved:   "APPROVED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Canceled:   "CANCELED",
	}
}

// StatusFromString parses the persisted / wire name of a status.
func StatusFromString(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != Unknown && str == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the order is frozen for mutation.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// IsSettable reports whether s may be the target of a generic status update.
func (s Status) IsSettable() bool {
	return s == Pending || s == Quotation || s == Approved || s == InProgress
}

// ChangeTo performs a generic transition between intermediate states.
// Terminal targets carry side effects and must use Complete or Cancel.
func (s Status) ChangeTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.IsSettable() || !target.IsSettable() {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), target.String())
	}
	return target, nil
}

func (s Status) Complete() (Status, error) {
	if !s.IsSettable() {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Completed.String())
	}
	return Completed, nil
}

func (s Status) Reopen() (Status, error) {
	if s != Completed {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), InProgress.String())
	}
	return InProgress, nil
}

func (s Status) Cancel() (Status, error) {
	if !s.IsSettable() {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Canceled.String())
	}
	return Canceled, nil
}
