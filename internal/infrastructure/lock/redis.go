package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/salonkit/settlement-api/pkg/apperror"
)

// RedisLocker serializes settlement mutations across processes using Redis
// locks. The TTL bounds how long a crashed holder can block others.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker creates a Redis-backed locker
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
	}
}

// Acquire obtains the lock for the given key, retrying briefly so two
// near-simultaneous requests queue instead of one failing outright.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperror.NewConflictError("Another operation on this settlement is in progress")
	}
	if err != nil {
		return nil, err
	}

	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
