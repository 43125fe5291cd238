package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL = 2 * time.Hour
	defaultLockWait = 250 * time.Millisecond

	// releaseTimeout bounds the cleanup done after the caller's context is gone.
	releaseTimeout = 2 * time.Second
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrSessionBusy       = errors.New("session is busy with a run")
	ErrSessionNotFound   = errors.New("session not found")
	ErrMazeNotFound      = errors.New("maze not found")
)

var _ i.SessionManager = &GameSessionManager{}

// GameSessionManager owns the lifecycle of coding-maze sessions.
// Every change to a session runs under its RunLocker lock: load, transition, save.
type GameSessionManager struct {
	store     i.SessionStore
	locker    i.RunLocker
	mazeRepo  i.MazeRepo
	tokenizer i.SessionTokenizer
	logger    general_i.Logger
	tokenTTL  time.Duration
	lockWait  time.Duration
	newSeed   func() int64
}

// Config holds the dependencies of a GameSessionManager.
type Config struct {
	Store     i.SessionStore
	Locker    i.RunLocker
	MazeRepo  i.MazeRepo
	Tokenizer i.SessionTokenizer
	Logger    general_i.Logger
	TokenTTL  time.Duration // Lifetime of session tokens, 2h when zero
	LockWait  time.Duration // How long a change waits for a running session, 250ms when zero
	SeedFunc  func() int64  // Source of maze seeds, maze.NewSeed when nil
}

// NewGameSessionManager validates the configuration and builds the manager.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil || c.Store == nil || c.Locker == nil || c.MazeRepo == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}

	gsm := &GameSessionManager{
		store:     c.Store,
		locker:    c.Locker,
		mazeRepo:  c.MazeRepo,
		tokenizer: c.Tokenizer,
		logger:    c.Logger,
		tokenTTL:  c.TokenTTL,
		lockWait:  c.LockWait,
		newSeed:   c.SeedFunc,
	}
	if gsm.tokenTTL <= 0 {
		gsm.tokenTTL = defaultTokenTTL
	}
	if gsm.lockWait <= 0 {
		gsm.lockWait = defaultLockWait
	}
	if gsm.newSeed == nil {
		gsm.newSeed = maze.NewSeed
	}
	return gsm, nil
}

// NewSession starts a session on a fresh or stored maze and issues its token.
func (g *GameSessionManager) NewSession(ctx context.Context, opts dmn.SessionOptions) (*dmn.Session, string, error) {
	var (
		level  game.Level
		record *dmn.MazeRecord
		grid   *maze.Grid
		err    error
	)

	if opts.MazeID != nil {
		record, err = g.mazeRepo.ByID(ctx, *opts.MazeID)
		if err != nil {
			if errors.Is(err, i.ErrNotFound) {
				return nil, "", fmt.Errorf("%w: %s", ErrMazeNotFound, opts.MazeID)
			}
			g.logger.Error(fmt.Sprintf("loading maze %s: %s", opts.MazeID, err))
			return nil, "", err
		}
		if grid, err = record.Grid(); err != nil {
			g.logger.Error(fmt.Sprintf("rebuilding stored maze: %s", err))
			return nil, "", err
		}
		level = game.LevelFor(record.Level)
	} else {
		level = game.LevelFor(opts.Level)
		seed := g.newSeed()
		if opts.Seed != nil {
			seed = *opts.Seed
		}
		if grid, record, err = g.generateMaze(ctx, level, seed); err != nil {
			return nil, "", err
		}
	}

	session := &dmn.Session{
		ID:     uuid.New(),
		MazeID: record.ID,
		State:  game.NewState(level, grid),
	}
	if err := g.store.Save(ctx, session.Record()); err != nil {
		g.logger.Error(fmt.Sprintf("saving new session: %s", err))
		return nil, "", err
	}

	token, err := g.tokenizer.SessionToken(session.ID, g.tokenTTL)
	if err != nil {
		g.logger.Error(fmt.Sprintf("issuing token for session %s: %s", session.ID, err))
		return nil, "", err
	}

	g.logger.Info(fmt.Sprintf("started session %s on level %d maze %s", session.ID, level.Number, record.ID))
	return session, token, nil
}

// Session returns the current state of a session.
func (g *GameSessionManager) Session(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	return g.load(ctx, id)
}

// AddCommand appends a command to the session's program.
func (g *GameSessionManager) AddCommand(ctx context.Context, id uuid.UUID, cmd robot.Command) (*dmn.Session, error) {
	return g.apply(ctx, id, game.AddCommand{Command: cmd})
}

// RemoveLastCommand drops the last command of the session's program.
func (g *GameSessionManager) RemoveLastCommand(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	return g.apply(ctx, id, game.RemoveLastCommand{})
}

// Reset clears the program and returns the robot to the start.
func (g *GameSessionManager) Reset(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	return g.apply(ctx, id, game.Reset{})
}

// NewMaze replaces the session's maze with a new one of the same level.
func (g *GameSessionManager) NewMaze(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	var session *dmn.Session
	err := g.withLock(ctx, id, func() error {
		var err error
		if session, err = g.loadForUpdate(ctx, id); err != nil {
			return err
		}
		grid, record, err := g.generateMaze(ctx, session.State.Level, g.newSeed())
		if err != nil {
			return err
		}
		if session.State, err = game.Transition(session.State, game.NewMaze{Grid: grid}); err != nil {
			return err
		}
		session.MazeID = record.ID
		return g.save(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("session %s switched to maze %s", id, session.MazeID))
	return session, nil
}

// AdvanceLevel moves a cleared session to the next level.
func (g *GameSessionManager) AdvanceLevel(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	var session *dmn.Session
	err := g.withLock(ctx, id, func() error {
		var err error
		if session, err = g.loadForUpdate(ctx, id); err != nil {
			return err
		}
		if session.State.Phase != game.Succeeded {
			return game.ErrLevelNotCleared
		}

		next := game.LevelFor(session.State.Level.Number + 1)
		grid, record, err := g.generateMaze(ctx, next, g.newSeed())
		if err != nil {
			return err
		}
		if session.State, err = game.Transition(session.State, game.AdvanceLevel{Grid: grid}); err != nil {
			return err
		}
		session.MazeID = record.ID
		return g.save(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("session %s advanced to level %d", id, session.State.Level.Number))
	return session, nil
}

// Run replays the session's program.
//
// The session stays RUNNING and locked for the whole playback. Playback may stop early when
// ctx is cancelled or onStep fails, but the run is still finished and saved before returning.
func (g *GameSessionManager) Run(ctx context.Context, id uuid.UUID, delay time.Duration, onStep func(robot.Step) error) (*dmn.Session, error) {
	var session *dmn.Session
	err := g.withLock(ctx, id, func() error {
		var err error
		if session, err = g.loadForUpdate(ctx, id); err != nil {
			return err
		}
		if session.State, err = game.Transition(session.State, game.StartRun{}); err != nil {
			return err
		}
		if err := g.save(ctx, session); err != nil {
			return err
		}

		if playErr := robot.Play(ctx, *session.State.LastRun, delay, onStep); playErr != nil {
			g.logger.Warning(fmt.Sprintf("playback of session %s interrupted: %s", id, playErr))
		}

		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if session.State, err = game.Transition(session.State, game.FinishRun{}); err != nil {
			return err
		}
		return g.save(finishCtx, session)
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("session %s run finished: %s", id, session.State.LastRun.Result))
	return session, nil
}

// DeleteSession drops a session.
func (g *GameSessionManager) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := g.withLock(ctx, id, func() error {
		return g.store.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	g.logger.Info(fmt.Sprintf("deleted session %s", id))
	return nil
}

// apply runs a single event against a session under its lock.
func (g *GameSessionManager) apply(ctx context.Context, id uuid.UUID, e game.Event) (*dmn.Session, error) {
	var session *dmn.Session
	err := g.withLock(ctx, id, func() error {
		var err error
		if session, err = g.loadForUpdate(ctx, id); err != nil {
			return err
		}
		if session.State, err = game.Transition(session.State, e); err != nil {
			return err
		}
		return g.save(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// withLock runs fn while holding the session lock.
// A lock that cannot be taken within lockWait means a run is playing.
func (g *GameSessionManager) withLock(ctx context.Context, id uuid.UUID, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, g.lockWait)
	defer cancel()

	unlock, err := g.locker.Lock(lockCtx, id)
	if err != nil {
		if errors.Is(err, i.ErrLockTaken) {
			g.logger.Warning(fmt.Sprintf("session %s is busy", id))
			return ErrSessionBusy
		}
		g.logger.Error(fmt.Sprintf("locking session %s: %s", id, err))
		return err
	}
	defer unlock()

	return fn()
}

func (g *GameSessionManager) load(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	record, err := g.store.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, i.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		g.logger.Error(fmt.Sprintf("loading session %s: %s", id, err))
		return nil, err
	}

	session, err := dmn.RestoreSession(record)
	if err != nil {
		g.logger.Error(fmt.Sprintf("restoring session %s: %s", id, err))
		return nil, err
	}
	return session, nil
}

// loadForUpdate loads a session while its lock is held.
// A live run keeps the lock until its result is saved, so a RUNNING session seen here was left
// behind by a failed save or a crashed replica; its run is finished before anything else.
func (g *GameSessionManager) loadForUpdate(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	session, err := g.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State.Phase != game.Running {
		return session, nil
	}

	if session.State, err = game.Transition(session.State, game.FinishRun{}); err != nil {
		g.logger.Error(fmt.Sprintf("finishing abandoned run of session %s: %s", id, err))
		return nil, err
	}
	if err := g.save(ctx, session); err != nil {
		return nil, err
	}
	g.logger.Warning(fmt.Sprintf("session %s had an unfinished run, recorded it as %s", id, session.State.LastRun.Result))
	return session, nil
}

func (g *GameSessionManager) save(ctx context.Context, s *dmn.Session) error {
	if err := g.store.Save(ctx, s.Record()); err != nil {
		g.logger.Error(fmt.Sprintf("saving session %s: %s", s.ID, err))
		return err
	}
	return nil
}

// generateMaze builds a maze for the level and stores it for replay.
func (g *GameSessionManager) generateMaze(ctx context.Context, level game.Level, seed int64) (*maze.Grid, *dmn.MazeRecord, error) {
	grid, err := level.NewMaze(seed)
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating maze for level %d: %s", level.Number, err))
		return nil, nil, err
	}

	record := dmn.NewMazeRecord(level.Number, grid)
	if err := g.mazeRepo.Save(ctx, record); err != nil {
		g.logger.Error(fmt.Sprintf("storing maze %s: %s", record.ID, err))
		return nil, nil, err
	}
	return grid, record, nil
}
