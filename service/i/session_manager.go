package i

import (
	"context"
	"time"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/google/uuid"
)

// SessionManager runs game sessions on behalf of the API.
type SessionManager interface {
	// NewSession starts a session and returns it with its access token.
	NewSession(ctx context.Context, opts dmn.SessionOptions) (*dmn.Session, string, error)
	Session(ctx context.Context, id uuid.UUID) (*dmn.Session, error)
	AddCommand(ctx context.Context, id uuid.UUID, cmd robot.Command) (*dmn.Session, error)
	RemoveLastCommand(ctx context.Context, id uuid.UUID) (*dmn.Session, error)
	Reset(ctx context.Context, id uuid.UUID) (*dmn.Session, error)
	NewMaze(ctx context.Context, id uuid.UUID) (*dmn.Session, error)
	AdvanceLevel(ctx context.Context, id uuid.UUID) (*dmn.Session, error)

	// Run replays the program, calling onStep for each step with delay between steps.
	// The run always reaches a terminal phase before Run returns.
	Run(ctx context.Context, id uuid.UUID, delay time.Duration, onStep func(robot.Step) error) (*dmn.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
