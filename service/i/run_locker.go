package i

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrLockTaken is returned when a session lock could not be acquired in time.
var ErrLockTaken = errors.New("session is locked")

// RunLocker serializes changes to a session. A run holds the lock for its whole playback,
// which keeps authoring and executing mutually exclusive.
type RunLocker interface {
	// Lock blocks until the session lock is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, sessionID uuid.UUID) (unlock func(), err error)
}
