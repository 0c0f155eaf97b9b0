// Package orderlock implements ports.OrderLocker. The Redis locker
// serializes lifecycle commands on one order across instances; the local
// locker does the same within one process and is used when Redis is not
// configured.
package orderlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "workshop:order-lock:"

type RedisOrderLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisOrderLocker holds each lock for at most ttl and retries for up to
// wait before reporting ports.ErrOrderBusy.
func NewRedisOrderLocker(rdb redis.UniversalClient, ttl, wait time.Duration) *RedisOrderLocker {
	return &RedisOrderLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisOrderLocker) Acquire(ctx context.Context, orderID kernel.UUID) (ports.Lock, error) {
	const backoff = 25 * time.Millisecond
	retries := int(l.wait / backoff)

	lock, err := l.client.Obtain(ctx, keyPrefix+orderID.String(), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoff), retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ports.ErrOrderBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtain order lock: %w", err)
	}
	return redisLock{lock: lock}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release treats an expired lock as released.
func (l redisLock) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}
