// Package dmn holds the records shared between the session service and its storage adapters.
package dmn

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/google/uuid"
)

// MazeRecord is a generated maze kept so it can be replayed by ID.
type MazeRecord struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Level     int       `bson:"level" json:"level"`
	Seed      int64     `bson:"seed" json:"seed"`
	Width     int       `bson:"width" json:"width"`
	Height    int       `bson:"height" json:"height"`
	Layout    [][]int   `bson:"layout" json:"layout"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// NewMazeRecord captures a grid under a fresh ID.
func NewMazeRecord(level int, g *maze.Grid) *MazeRecord {
	return &MazeRecord{
		ID:        uuid.New(),
		Level:     level,
		Seed:      g.Seed,
		Width:     g.Width,
		Height:    g.Height,
		Layout:    g.Layout(),
		CreatedAt: time.Now().UTC(),
	}
}

// Grid rebuilds the stored maze.
func (r *MazeRecord) Grid() (*maze.Grid, error) {
	g, err := maze.FromLayout(r.Layout)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", r.ID, err)
	}
	g.Seed = r.Seed
	return g, nil
}
