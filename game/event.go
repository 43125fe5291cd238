package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
)

// Event is an input to Transition.
type Event interface {
	apply(State) (State, error)
}

// AddCommand appends a command to the program.
type AddCommand struct {
	Command robot.Command
}

// RemoveLastCommand drops the most recently added command.
type RemoveLastCommand struct{}

// StartRun replays the program and enters RUNNING. The robot stays put until FinishRun.
type StartRun struct{}

// FinishRun ends playback, moving the robot to its final position.
type FinishRun struct{}

// Reset clears the program and returns the robot to the start.
type Reset struct{}

// NewMaze swaps in a freshly generated maze.
type NewMaze struct {
	Grid *maze.Grid
}

// AdvanceLevel moves a cleared session to the next level on the given maze.
type AdvanceLevel struct {
	Grid *maze.Grid
}

func (e AddCommand) apply(s State) (State, error) {
	if !s.Authoring() {
		return s, ErrNotAuthoring
	}
	if !e.Command.Valid() {
		return s, fmt.Errorf("%w: %d", robot.ErrUnknownCommand, int(e.Command))
	}
	if len(s.Commands) >= s.Level.MaxCommands {
		return s, fmt.Errorf("%w: level %d allows %d", ErrCommandLimit, s.Level.Number, s.Level.MaxCommands)
	}
	s.Commands = append(s.Commands, e.Command)
	return s, nil
}

func (RemoveLastCommand) apply(s State) (State, error) {
	if !s.Authoring() {
		return s, ErrNotAuthoring
	}
	if len(s.Commands) == 0 {
		return s, robot.ErrEmptySequence
	}
	s.Commands = s.Commands[:len(s.Commands)-1]
	return s, nil
}

func (StartRun) apply(s State) (State, error) {
	if s.Phase == Running {
		return s, ErrRunInProgress
	}
	if !s.Authoring() {
		return s, ErrNotAuthoring
	}
	run, err := robot.Execute(s.Grid, s.Agent, s.Commands)
	if err != nil {
		return s, err
	}
	s.Phase = Running
	s.LastRun = &run
	return s, nil
}

func (FinishRun) apply(s State) (State, error) {
	if s.Phase != Running || s.LastRun == nil {
		return s, ErrNotRunning
	}
	s.Agent = s.LastRun.Final
	if s.LastRun.Result == robot.Success {
		s.Phase = Succeeded
	} else {
		s.Phase = Failed
	}
	return s, nil
}

func (Reset) apply(s State) (State, error) {
	if s.Phase == Running {
		return s, ErrRunInProgress
	}
	return s.reset(), nil
}

func (e NewMaze) apply(s State) (State, error) {
	if s.Phase == Running {
		return s, ErrRunInProgress
	}
	if e.Grid == nil {
		return s, ErrNoGrid
	}
	s.Grid = e.Grid
	return s.reset(), nil
}

func (e AdvanceLevel) apply(s State) (State, error) {
	if s.Phase != Succeeded {
		return s, ErrLevelNotCleared
	}
	if e.Grid == nil {
		return s, ErrNoGrid
	}
	s.Level = LevelFor(s.Level.Number + 1)
	s.Grid = e.Grid
	return s.reset(), nil
}
