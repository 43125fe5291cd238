package game

import "github.com/beka-birhanu/vinom-robomaze/maze"

// Level describes the maze size and program budget of one stage.
type Level struct {
	Number      int `json:"number"`
	Width       int `json:"width"`
	Height      int `json:"height"`
	MaxCommands int `json:"max_commands"`
}

var levels = []Level{
	{Number: 1, Width: 7, Height: 7, MaxCommands: 15},
	{Number: 2, Width: 9, Height: 9, MaxCommands: 20},
	{Number: 3, Width: 11, Height: 11, MaxCommands: 25},
	{Number: 4, Width: 13, Height: 13, MaxCommands: 30},
	{Number: 5, Width: 15, Height: 15, MaxCommands: 35},
}

// LevelFor returns level n, clamped to the first and last level.
func LevelFor(n int) Level {
	if n < 1 {
		return levels[0]
	}
	if n > len(levels) {
		return levels[len(levels)-1]
	}
	return levels[n-1]
}

// LastLevel reports whether l is the final stage.
func (l Level) LastLevel() bool {
	return l.Number >= len(levels)
}

// NewMaze generates a maze sized for the level.
func (l Level) NewMaze(seed int64) (*maze.Grid, error) {
	return maze.New(l.Width, l.Height, seed)
}
