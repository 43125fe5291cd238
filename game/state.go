// Package game holds the state machine of a single coding-maze session.
//
// A session moves between four phases. Programs are authored while IDLE, replayed while
// RUNNING and end in SUCCESS or FAIL. Every change goes through Transition, which never
// mutates the state it is given.
package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	Idle Phase = iota
	Running
	Succeeded
	Failed
)

// Session errors.
var (
	ErrNotAuthoring    = errors.New("commands can only be changed before a run")
	ErrCommandLimit    = errors.New("command limit reached")
	ErrNotRunning      = errors.New("no run in progress")
	ErrRunInProgress   = errors.New("a run is in progress")
	ErrLevelNotCleared = errors.New("level not cleared")
	ErrNoGrid          = errors.New("no maze supplied")
	ErrUnknownPhase    = errors.New("unknown phase")
)

var phaseNames = map[Phase]string{
	Idle:      "IDLE",
	Running:   "RUNNING",
	Succeeded: "SUCCESS",
	Failed:    "FAIL",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPhase, text)
}

// State is one session: the maze, the robot and the program being written.
type State struct {
	Phase    Phase
	Level    Level
	Grid     *maze.Grid // shared, never mutated
	Agent    robot.Agent
	Commands []robot.Command
	LastRun  *robot.Run
}

// NewState starts a session on the given level and maze.
func NewState(level Level, grid *maze.Grid) State {
	return State{
		Phase: Idle,
		Level: level,
		Grid:  grid,
		Agent: startAgent(grid),
	}
}

// startAgent places the robot on the start cell facing right.
func startAgent(g *maze.Grid) robot.Agent {
	return robot.NewAgent(g.Start.X, g.Start.Y, maze.Right)
}

// Transition applies e to s and returns the next state.
// On error the returned state is s unchanged.
func Transition(s State, e Event) (State, error) {
	next, err := e.apply(s.clone())
	if err != nil {
		return s, err
	}
	return next, nil
}

// Authoring reports whether the program can still be edited.
func (s State) Authoring() bool {
	return s.Phase == Idle
}

// CommandsLeft is the number of commands that can still be added.
func (s State) CommandsLeft() int {
	return max(s.Level.MaxCommands-len(s.Commands), 0)
}

func (s State) clone() State {
	s.Commands = slices.Clone(s.Commands)
	if s.LastRun != nil {
		run := *s.LastRun
		s.LastRun = &run
	}
	return s
}

// reset puts the robot back on the start and clears the program.
func (s State) reset() State {
	s.Phase = Idle
	s.Agent = startAgent(s.Grid)
	s.Commands = nil
	s.LastRun = nil
	return s
}
