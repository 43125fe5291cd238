package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/programfile"
	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errRunFailed = errors.New("robot did not reach the finish")

func newRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:          "robomaze",
		Short:        "Generate mazes and run robot programs through them",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCommand(), newRunCommand(fs))
	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		width, height int
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated maze",
		Long: `Generate carves a maze with the randomized depth-first backtracker and prints it.

S marks the start, F the finish, # a wall and . a passage.

Examples:
  # Reproduce a maze from its seed
  robomaze generate --width 11 --height 11 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = maze.NewSeed()
			}
			g, err := maze.New(width, height, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed: %d\n", g.Seed)
			fmt.Fprint(out, g.String())
			return nil
		},
	}

	level := game.LevelFor(1)
	cmd.Flags().IntVar(&width, "width", level.Width, "Maze width, odd and between 5 and 51")
	cmd.Flags().IntVar(&height, "height", level.Height, "Maze height, odd and between 5 and 51")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the generator, random when omitted")

	return cmd
}

func newRunCommand(fs afero.Fs) *cobra.Command {
	var (
		program string
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a program file against its maze",
		Long: `Run loads a YAML program, generates its maze and replays the commands step by step.

The exit status is 1 when the robot hits a wall or stops off the finish.

Examples:
  robomaze run --program prog.yaml --delay 300ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := programfile.NewLoader(fs).Load(program)
			if err != nil {
				return err
			}
			g, err := p.Maze(maze.NewSeed)
			if err != nil {
				return err
			}

			return play(cmd.Context(), cmd.OutOrStdout(), g, p.Commands, delay)
		},
	}

	cmd.Flags().StringVar(&program, "program", "", "Path to the YAML program file")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause between steps")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

// play replays cmds on g and prints every step and the result.
func play(ctx context.Context, out io.Writer, g *maze.Grid, cmds []robot.Command, delay time.Duration) error {
	start := robot.NewAgent(g.Start.X, g.Start.Y, maze.Right)
	run, err := robot.Execute(g, start, cmds)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "seed: %d\n", g.Seed)
	fmt.Fprint(out, g.String())

	err = robot.Play(ctx, run, delay, func(s robot.Step) error {
		mark := ""
		if s.Collided {
			mark = " (wall)"
		}
		_, err := fmt.Fprintf(out, "%2d %-10s (%d,%d) %s%s\n",
			s.Index+1, s.Command, s.Agent.Pos.X, s.Agent.Pos.Y, s.Agent.Facing, mark)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "result: %s\n", run.Result)
	if run.Result != robot.Success {
		return errRunFailed
	}
	return nil
}
