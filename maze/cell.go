package maze

// Cell represents a single position of the maze grid.
type Cell struct {
	X        int  // Column index of the cell
	Y        int  // Row index of the cell
	IsWall   bool // IsWall indicates the robot cannot stand on the cell.
	IsFinish bool // IsFinish marks the goal cell.
}

// Position represents a coordinate on the maze grid.
type Position struct {
	X int `json:"x" bson:"x" yaml:"x"`
	Y int `json:"y" bson:"y" yaml:"y"`
}

// Step returns the position reached by moving n cells in the given direction.
func (p Position) Step(d Direction, n int) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X*n, Y: p.Y + delta.Y*n}
}
