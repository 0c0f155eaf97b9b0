package orderlock

import (
	"context"
	"sync"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
)

// LocalOrderLocker keeps one semaphore per order in memory. Entries are
// removed when the last holder or waiter leaves.
type LocalOrderLocker struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
	wait  time.Duration
}

type slot struct {
	sem  chan struct{}
	refs int
}

func NewLocalOrderLocker(wait time.Duration) *LocalOrderLocker {
	return &LocalOrderLocker{
		slots: make(map[kernel.UUID]*slot),
		wait:  wait,
	}
}

func (l *LocalOrderLocker) Acquire(ctx context.Context, orderID kernel.UUID) (ports.Lock, error) {
	s := l.ref(orderID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
		return &localLock{owner: l, orderID: orderID, slot: s}, nil
	case <-timer.C:
		l.unref(orderID)
		return nil, ports.ErrOrderBusy
	case <-ctx.Done():
		l.unref(orderID)
		return nil, ctx.Err()
	}
}

func (l *LocalOrderLocker) ref(orderID kernel.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[orderID]
	if !ok {
		s = &slot{sem: make(chan struct{}, 1)}
		l.slots[orderID] = s
	}
	s.refs++
	return s
}

func (l *LocalOrderLocker) unref(orderID kernel.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[orderID]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, orderID)
	}
}

type localLock struct {
	owner    *LocalOrderLocker
	orderID  kernel.UUID
	slot     *slot
	released sync.Once
}

func (l *localLock) Release(context.Context) error {
	l.released.Do(func() {
		<-l.slot.sem
		l.owner.unref(l.orderID)
	})
	return nil
}
