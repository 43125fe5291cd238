package runlock

import (
	"context"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/google/uuid"
)

// sessionLock is the semaphore of one session and the number of callers holding or awaiting it.
type sessionLock struct {
	sem  chan struct{}
	refs int
}

// MemoryLocker locks sessions inside a single process.
// A session's entry is dropped once nobody holds or waits for it.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

// NewMemoryLocker creates an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[uuid.UUID]*sessionLock)}
}

var _ i.RunLocker = &MemoryLocker{}

// Lock blocks until the session lock is held or ctx is done.
func (l *MemoryLocker) Lock(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	lock := l.acquire(sessionID)

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(sessionID)
		return nil, fmt.Errorf("%w: %s", i.ErrLockTaken, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.sem
			l.release(sessionID)
		})
	}, nil
}

func (l *MemoryLocker) acquire(sessionID uuid.UUID) *sessionLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sessionLock{sem: make(chan struct{}, 1)}
		l.locks[sessionID] = lock
	}
	lock.refs++
	return lock
}

func (l *MemoryLocker) release(sessionID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[sessionID]
	if !ok {
		return
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, sessionID)
	}
}

// size reports how many sessions currently have an entry.
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
