package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// TimeLog is a work interval. An interval without an end is open; an order
// holds at most one open interval.
type TimeLog struct {
	id    kernel.UUID
	start time.Time
	end   *time.Time
}

func RestoreTimeLog(id kernel.UUID, start time.Time, end *time.Time) *TimeLog {
	return &TimeLog{id: id, start: start, end: end}
}

func (l *TimeLog) ID() kernel.UUID {
	return l.id
}

func (l *TimeLog) Start() time.Time {
	return l.start
}

func (l *TimeLog) End() *time.Time {
	return l.end
}

func (l *TimeLog) IsOpen() bool {
	return l.end == nil
}

// Duration of a closed interval; an open one measures up to now.
func (l *TimeLog) Duration(now time.Time) time.Duration {
	if l.end != nil {
		return l.end.Sub(l.start)
	}
	return now.Sub(l.start)
}
