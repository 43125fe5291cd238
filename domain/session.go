package dmn

import (
	"time"

	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/google/uuid"
)

// Session is a live game session.
type Session struct {
	ID     uuid.UUID
	MazeID uuid.UUID // stored maze the session is playing
	State  game.State
}

// SessionOptions configures a new session. Zero values pick defaults.
type SessionOptions struct {
	Level  int        // Level to start on, 1 when unset
	Seed   *int64     // Seed for the maze, random when nil
	MazeID *uuid.UUID // Stored maze to replay; overrides Level and Seed
}

// SessionRecord is the stored form of a Session.
type SessionRecord struct {
	ID        uuid.UUID     `json:"id"`
	MazeID    uuid.UUID     `json:"maze_id"`
	Snapshot  game.Snapshot `json:"snapshot"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Record converts the session into its stored form.
func (s *Session) Record() SessionRecord {
	return SessionRecord{
		ID:        s.ID,
		MazeID:    s.MazeID,
		Snapshot:  s.State.Snapshot(),
		UpdatedAt: time.Now().UTC(),
	}
}

// RestoreSession rebuilds a Session from its stored form.
func RestoreSession(r SessionRecord) (*Session, error) {
	state, err := game.Restore(r.Snapshot)
	if err != nil {
		return nil, err
	}
	return &Session{ID: r.ID, MazeID: r.MazeID, State: state}, nil
}
