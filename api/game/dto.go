// Package gameapi provides the request and response bodies of the session endpoints.
package gameapi

import (
	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/google/uuid"
)

// NewSessionRequest represents a request to start a session.
// MazeID replays a stored maze and takes precedence over Level and Seed.
type NewSessionRequest struct {
	Level  int        `json:"level" binding:"omitempty,min=1"`
	Seed   *int64     `json:"seed"`
	MazeID *uuid.UUID `json:"maze_id"`
}

// AddCommandRequest appends one command to the program.
type AddCommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// NewSessionResponse carries the new session and the token that grants access to it.
type NewSessionResponse struct {
	Token   string           `json:"token"`
	Session *SessionResponse `json:"session"`
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	ID           uuid.UUID       `json:"id"`
	MazeID       uuid.UUID       `json:"maze_id"`
	Phase        game.Phase      `json:"phase"`
	Level        game.Level      `json:"level"`
	Seed         int64           `json:"seed"`
	Maze         string          `json:"maze"`
	Layout       [][]int         `json:"layout"`
	Agent        robot.Agent     `json:"agent"`
	Commands     []robot.Command `json:"commands"`
	CommandsLeft int             `json:"commands_left"`
	LastRun      *robot.Run      `json:"last_run,omitempty"`
}

// NewSessionResponseFrom builds the public view of s.
func NewSessionResponseFrom(s *dmn.Session) *SessionResponse {
	commands := s.State.Commands
	if commands == nil {
		commands = []robot.Command{}
	}
	return &SessionResponse{
		ID:           s.ID,
		MazeID:       s.MazeID,
		Phase:        s.State.Phase,
		Level:        s.State.Level,
		Seed:         s.State.Grid.Seed,
		Maze:         s.State.Grid.String(),
		Layout:       s.State.Grid.Layout(),
		Agent:        s.State.Agent,
		Commands:     commands,
		CommandsLeft: s.State.CommandsLeft(),
		LastRun:      s.State.LastRun,
	}
}

// RunResponse is the outcome of a finished run.
type RunResponse struct {
	Result robot.Result `json:"result"`
	Final  robot.Agent  `json:"final"`
	Steps  []robot.Step `json:"steps"`
	Phase  game.Phase   `json:"phase"`
}

// NewRunResponse builds the run outcome of a session that just finished a run.
func NewRunResponse(s *dmn.Session) *RunResponse {
	run := s.State.LastRun
	return &RunResponse{
		Result: run.Result,
		Final:  run.Final,
		Steps:  run.Steps,
		Phase:  s.State.Phase,
	}
}
