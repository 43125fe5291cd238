package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four cardinal headings on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var (
	ErrUnknownDirection = errors.New("unknown direction")

	// Directions lists the headings in the order the generator inspects them.
	Directions = []Direction{Up, Down, Left, Right}

	directionVectors = map[Direction]Position{
		Up:    {X: 0, Y: -1},
		Down:  {X: 0, Y: 1},
		Left:  {X: -1, Y: 0},
		Right: {X: 1, Y: 0},
	}

	directionNames = map[Direction]string{
		Up:    "UP",
		Down:  "DOWN",
		Left:  "LEFT",
		Right: "RIGHT",
	}
)

// Delta returns the unit vector of the direction.
func (d Direction) Delta() Position {
	return directionVectors[d]
}

// TurnLeft rotates 90° counter-clockwise: UP→LEFT→DOWN→RIGHT→UP.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	default:
		return Up
	}
}

// TurnRight rotates 90° clockwise: UP→RIGHT→DOWN→LEFT→UP.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a name such as "UP" or "right" into a Direction.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
