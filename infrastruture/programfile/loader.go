// Package programfile reads robot programs written as YAML files.
//
// A program file names the maze to play and the commands to run:
//
//	width: 11
//	height: 11
//	seed: 42
//	commands: [FORWARD, FORWARD, TURN_RIGHT, JUMP]
//
// Width and height default to 7 when omitted. A missing seed leaves the choice to the caller.
package programfile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const defaultDimension = 7

var ErrInvalidProgram = errors.New("invalid program file")

// Program is a decoded program file.
type Program struct {
	Width    int
	Height   int
	Seed     *int64
	Commands []robot.Command
}

type programFile struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Seed     *int64   `yaml:"seed"`
	Commands []string `yaml:"commands"`
}

// Loader reads program files from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader on fs. Use afero.NewOsFs for real files.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load reads and validates the program at path.
func (l *Loader) Load(path string) (*Program, error) {
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a program from YAML.
func Parse(raw []byte) (*Program, error) {
	var file programFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProgram, err)
	}

	if file.Width == 0 {
		file.Width = defaultDimension
	}
	if file.Height == 0 {
		file.Height = defaultDimension
	}

	if len(file.Commands) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, robot.ErrEmptySequence)
	}
	cmds, err := robot.ParseCommands(file.Commands)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	return &Program{
		Width:    file.Width,
		Height:   file.Height,
		Seed:     file.Seed,
		Commands: cmds,
	}, nil
}

// Maze generates the program's maze, drawing a seed from newSeed when the file has none.
func (p *Program) Maze(newSeed func() int64) (*maze.Grid, error) {
	seed := newSeed()
	if p.Seed != nil {
		seed = *p.Seed
	}
	return maze.New(p.Width, p.Height, seed)
}
