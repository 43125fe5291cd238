/*
Package maze provides tools for creating and inspecting the robot mazes.

A maze is an odd-sized grid of cells. The outer border and every other row and column
start as walls; passages are carved with a randomized depth-first backtracker, so the
carved cells always form a spanning tree rooted at the start cell.

The package also owns the direction table shared with the command interpreter and the
injectable random source used for carving.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minMazeDimension = 5
	maxMazeDimension = 51

	layoutPassage = 0
	layoutWall    = 1
	layoutFinish  = 2
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidLayout     = errors.New("invalid maze layout")

	// StartPosition is the fixed cell every robot starts from.
	StartPosition = Position{X: 1, Y: 1}
)

// Grid represents a rectangular maze. It is read-only once constructed.
type Grid struct {
	Width  int      // Width of the maze (number of columns)
	Height int      // Height of the maze (number of rows)
	Cells  [][]Cell // Cells indexed as Cells[y][x]
	Start  Position // Start cell of the robot
	Finish Position // The single finish cell
	Seed   int64    // Seed the maze was generated from, zero for literal layouts
}

// New generates a maze of the given dimensions from a seed.
func New(width, height int, seed int64) (*Grid, error) {
	g, err := Generate(width, height, NewRandomizer(seed))
	if err != nil {
		return nil, err
	}
	g.Seed = seed
	return g, nil
}

// Generate carves a maze with the randomized depth-first backtracker.
//
// Every carve step only opens cells that are still walls, so the passages form a tree;
// the finish is fixed two cells in from the far corner.
func Generate(width, height int, r Randomizer) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	g := newWalledGrid(width, height)
	g.open(g.Start)
	stack := []Position{g.Start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates := g.carveCandidates(current)
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		Shuffle(r, len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		dir := candidates[0]

		g.open(current.Step(dir, 1))
		next := current.Step(dir, 2)
		g.open(next)
		stack = append(stack, next)
	}

	g.Finish = Position{X: width - 2, Y: height - 2}
	g.Cells[g.Finish.Y][g.Finish.X].IsFinish = true
	return g, nil
}

// FromLayout builds a grid from a literal layout where 1 is a wall, 0 a passage
// and 2 the finish. Rows are indexed by y.
func FromLayout(layout [][]int) (*Grid, error) {
	height := len(layout)
	if height == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}
	width := len(layout[0])
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	g := newWalledGrid(width, height)
	finishes := 0
	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, y, len(row), width)
		}
		for x, v := range row {
			switch v {
			case layoutWall:
			case layoutPassage:
				g.open(Position{X: x, Y: y})
			case layoutFinish:
				g.open(Position{X: x, Y: y})
				g.Cells[y][x].IsFinish = true
				g.Finish = Position{X: x, Y: y}
				finishes++
			default:
				return nil, fmt.Errorf("%w: unknown cell value %d at (%d,%d)", ErrInvalidLayout, v, x, y)
			}
		}
	}

	if finishes != 1 {
		return nil, fmt.Errorf("%w: want exactly one finish, got %d", ErrInvalidLayout, finishes)
	}
	if !g.IsPassage(g.Start) {
		return nil, fmt.Errorf("%w: start cell is a wall", ErrInvalidLayout)
	}
	return g, nil
}

// validateDimensions checks that both axes are odd and within range.
func validateDimensions(width, height int) error {
	for _, d := range []int{width, height} {
		if d%2 == 0 || d < minMazeDimension || d > maxMazeDimension {
			return fmt.Errorf("%w: %dx%d (both must be odd and between %d and %d)",
				ErrInvalidDimensions, width, height, minMazeDimension, maxMazeDimension)
		}
	}
	return nil
}

// newWalledGrid returns a grid where every cell is a wall.
func newWalledGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{X: x, Y: y, IsWall: true}
		}
	}

	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
		Start:  StartPosition,
	}
}

// carveCandidates lists the directions leading to a still-walled lattice cell two steps away,
// strictly inside the border.
func (g *Grid) carveCandidates(pos Position) []Direction {
	var result []Direction
	for _, dir := range Directions {
		next := pos.Step(dir, 2)
		if next.X > 0 && next.X < g.Width-1 && next.Y > 0 && next.Y < g.Height-1 && g.Cells[next.Y][next.X].IsWall {
			result = append(result, dir)
		}
	}
	return result
}

func (g *Grid) open(pos Position) {
	g.Cells[pos.Y][pos.X].IsWall = false
}

// InBound reports whether the position lies on the grid.
func (g *Grid) InBound(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// IsPassage reports whether the position is on the grid and not a wall.
func (g *Grid) IsPassage(pos Position) bool {
	return g.InBound(pos) && !g.Cells[pos.Y][pos.X].IsWall
}

// IsFinish reports whether the position is the finish cell.
func (g *Grid) IsFinish(pos Position) bool {
	return g.InBound(pos) && g.Cells[pos.Y][pos.X].IsFinish
}

// Cell returns the cell at the position and whether it exists.
func (g *Grid) Cell(pos Position) (Cell, bool) {
	if !g.InBound(pos) {
		return Cell{}, false
	}
	return g.Cells[pos.Y][pos.X], true
}

// Layout returns the grid in its literal form, the inverse of FromLayout.
func (g *Grid) Layout() [][]int {
	layout := make([][]int, g.Height)
	for y, row := range g.Cells {
		layout[y] = make([]int, g.Width)
		for x, cell := range row {
			switch {
			case cell.IsFinish:
				layout[y][x] = layoutFinish
			case cell.IsWall:
				layout[y][x] = layoutWall
			default:
				layout[y][x] = layoutPassage
			}
		}
	}
	return layout
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.Cells {
		for x, cell := range row {
			switch {
			case cell.IsFinish:
				b.WriteByte('F')
			case x == g.Start.X && y == g.Start.Y:
				b.WriteByte('S')
			case cell.IsWall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
