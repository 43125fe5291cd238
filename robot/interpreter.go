// Package robot replays command programs against a maze.
//
// Execute is a pure function from (grid, start agent, commands) to a Run; the pacing of
// the replay for display belongs to Play, which consumes the recorded steps.
package robot

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-robomaze/maze"
)

// MaxCommands is the hard cap on a program accepted by Execute.
// Authoring limits per level are lower and enforced by the session.
const MaxCommands = 64

var (
	ErrEmptySequence   = errors.New("empty command sequence")
	ErrSequenceTooLong = errors.New("command sequence too long")
	ErrInvalidAgent    = errors.New("agent must face a valid direction from a passage cell")
	ErrUnknownCommand  = errors.New("unknown command")
)

// Agent is the simulated robot.
type Agent struct {
	Pos    maze.Position  `json:"pos" bson:"pos"`
	Facing maze.Direction `json:"facing" bson:"facing"`
}

// NewAgent creates an agent at (x, y) facing the given direction.
func NewAgent(x, y int, facing maze.Direction) Agent {
	return Agent{Pos: maze.Position{X: x, Y: y}, Facing: facing}
}

// Step is the agent state after one replayed command.
// A collision step keeps the position the robot bumped from.
type Step struct {
	Index    int     `json:"index"`
	Command  Command `json:"command"`
	Agent    Agent   `json:"agent"`
	Collided bool    `json:"collided"`
}

// Run is the outcome of replaying a program.
type Run struct {
	Result Result `json:"result"`
	Final  Agent  `json:"final"`
	Steps  []Step `json:"steps"`
}

// Execute replays cmds one at a time from start, stopping at the first collision.
func Execute(g *maze.Grid, start Agent, cmds []Command) (Run, error) {
	if len(cmds) == 0 {
		return Run{}, ErrEmptySequence
	}
	if len(cmds) > MaxCommands {
		return Run{}, fmt.Errorf("%w: %d commands, limit is %d", ErrSequenceTooLong, len(cmds), MaxCommands)
	}
	if !g.IsPassage(start.Pos) || !start.Facing.Valid() {
		return Run{}, ErrInvalidAgent
	}
	for i, c := range cmds {
		if !c.Valid() {
			return Run{}, fmt.Errorf("command %d: %w: %d", i+1, ErrUnknownCommand, int(c))
		}
	}

	agent := start
	steps := make([]Step, 0, len(cmds))
	for i, c := range cmds {
		next, ok := apply(g, agent, c)
		if !ok {
			steps = append(steps, Step{Index: i, Command: c, Agent: agent, Collided: true})
			return Run{Result: FailWallCollision, Final: agent, Steps: steps}, nil
		}
		agent = next
		steps = append(steps, Step{Index: i, Command: c, Agent: agent})
	}

	result := FailOffTarget
	if g.IsFinish(agent.Pos) {
		result = Success
	}
	return Run{Result: result, Final: agent, Steps: steps}, nil
}

// apply returns the agent after c and false when c runs into a wall or off the grid.
func apply(g *maze.Grid, a Agent, c Command) (Agent, bool) {
	switch c {
	case TurnLeft:
		a.Facing = a.Facing.TurnLeft()
		return a, true
	case TurnRight:
		a.Facing = a.Facing.TurnRight()
		return a, true
	case Jump:
		return move(g, a, 2)
	default:
		return move(g, a, 1)
	}
}

// move only checks the landing cell, so a jump clears one cell of any kind.
func move(g *maze.Grid, a Agent, distance int) (Agent, bool) {
	target := a.Pos.Step(a.Facing, distance)
	if !g.IsPassage(target) {
		return a, false
	}
	a.Pos = target
	return a, true
}
