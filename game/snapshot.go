package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
)

// Snapshot is the serializable form of a State.
type Snapshot struct {
	Phase    Phase           `json:"phase"`
	Level    int             `json:"level"`
	Seed     int64           `json:"seed"`
	Layout   [][]int         `json:"layout"`
	Agent    robot.Agent     `json:"agent"`
	Commands []robot.Command `json:"commands"`
	LastRun  *robot.Run      `json:"last_run,omitempty"`
}

// Snapshot captures the state for storage or transport.
func (s State) Snapshot() Snapshot {
	c := s.clone()
	return Snapshot{
		Phase:    c.Phase,
		Level:    c.Level.Number,
		Seed:     c.Grid.Seed,
		Layout:   c.Grid.Layout(),
		Agent:    c.Agent,
		Commands: c.Commands,
		LastRun:  c.LastRun,
	}
}

// Restore rebuilds a State from a snapshot.
func Restore(snap Snapshot) (State, error) {
	grid, err := maze.FromLayout(snap.Layout)
	if err != nil {
		return State{}, fmt.Errorf("restoring maze: %w", err)
	}
	grid.Seed = snap.Seed

	if !grid.IsPassage(snap.Agent.Pos) {
		return State{}, fmt.Errorf("restoring agent: %w", robot.ErrInvalidAgent)
	}

	return State{
		Phase:    snap.Phase,
		Level:    LevelFor(snap.Level),
		Grid:     grid,
		Agent:    snap.Agent,
		Commands: snap.Commands,
		LastRun:  snap.LastRun,
	}, nil
}
