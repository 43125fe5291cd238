// Package runlock provides the per-session locks that keep program edits out of a running session.
package runlock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	retryDelay     = 25 * time.Millisecond
	releaseTimeout = 2 * time.Second
)

// RedisLocker locks sessions with a redsync mutex so every API replica sees the same lock.
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

// NewRedisLocker creates a locker on the given Redis client.
// expiry must outlast the longest playback.
func NewRedisLocker(client *redis.Client, expiry time.Duration) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{
		rs:     redsync.New(pool),
		expiry: expiry,
	}
}

var _ i.RunLocker = &RedisLocker{}

// Lock retries until the session lock is held or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	mutex := l.rs.NewMutex(
		lockKey(sessionID),
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(math.MaxInt32),
		redsync.WithRetryDelay(retryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", i.ErrLockTaken, err)
	}

	unlock := func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_, _ = mutex.UnlockContext(ctx)
	}
	return unlock, nil
}

func lockKey(sessionID uuid.UUID) string {
	return "robomaze:session:" + sessionID.String() + ":run_lock"
}
