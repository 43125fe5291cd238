package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("not found")

// MazeRepo defines the persistence operations for generated mazes.
type MazeRepo interface {
	// Save inserts or replaces a maze record.
	Save(ctx context.Context, maze *dmn.MazeRecord) error

	// ByID retrieves a maze by its ID.
	// Returns ErrNotFound if no maze has that ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
}

// SessionStore keeps the current state of every live session.
type SessionStore interface {
	// Save writes the session record, refreshing its expiry.
	Save(ctx context.Context, record dmn.SessionRecord) error

	// ByID retrieves a session record.
	// Returns ErrNotFound if the session does not exist or expired.
	ByID(ctx context.Context, id uuid.UUID) (dmn.SessionRecord, error)

	// Delete removes a session record. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
