package robot

import (
	"fmt"
	"strings"
)

// Command is one token of a robot program.
type Command int

const (
	Forward Command = iota
	TurnLeft
	TurnRight
	Jump // Jump moves two cells, clearing whatever lies in between.
)

var commandNames = map[Command]string{
	Forward:   "FORWARD",
	TurnLeft:  "TURN_LEFT",
	TurnRight: "TURN_RIGHT",
	Jump:      "JUMP",
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand converts a name such as "FORWARD" or "turn_left" into a Command.
func ParseCommand(s string) (Command, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// ParseCommands converts every name of a program, reporting the first bad token.
func ParseCommands(names []string) ([]Command, error) {
	cmds := make([]Command, 0, len(names))
	for i, name := range names {
		c, err := ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// MarshalText encodes the command by name.
func (c Command) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a command name.
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
