// Command mazesolve loads a maze from the binary wire format (spec §6.1),
// runs one of the four solvers against it to completion, and renders the
// result as ASCII art sized to the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/internal/mazelog"
	"github.com/arcwalk/mazewalk/loader"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/bfs"
	"github.com/arcwalk/mazewalk/solver/dfs"
	"github.com/arcwalk/mazewalk/solver/mtm1"
	"github.com/arcwalk/mazewalk/solver/mtm2"
)

func main() {
	mazePath := flag.String("maze", "", "path to a maze file in the binary wire format")
	algo := flag.String("solver", "bfs", "solver to run: bfs, dfs, mtm1, mtm2")
	budget := flag.Int("budget", 0, "abort with an error after this many steps (0 = unbounded)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := mazelog.New(os.Stderr, level)

	if *mazePath == "" {
		logger.Fatal().Msg("mazesolve: -maze is required")
	}

	f, err := os.Open(*mazePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *mazePath).Msg("mazesolve: cannot open maze file")
	}
	defer f.Close()

	store, err := loader.Load(f, loader.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("mazesolve: failed to decode maze")
	}

	step, err := buildSolver(*algo, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("solver", *algo).Msg("mazesolve: unknown solver")
	}

	driver := solver.NewDriver(step)
	phases, err := driver.Run(*budget)
	final := solver.NoSolution
	if len(phases) > 0 {
		final = phases[len(phases)-1]
	}
	if err != nil {
		logger.Error().Err(err).Int("steps", driver.Steps()).Msg("mazesolve: solver did not terminate within budget")
	}

	logger.Info().Str("solver", *algo).Int("steps", driver.Steps()).Str("result", final.String()).Msg("mazesolve: solve complete")

	render(os.Stdout, store)
}

func buildSolver(name string, store *cellstore.Store, logger zerolog.Logger) (solver.StepFunc, error) {
	opt := solver.WithLogger(logger)
	switch name {
	case "bfs":
		s, err := bfs.New(store, opt)
		if err != nil {
			return nil, err
		}
		return s.StepFunc(), nil
	case "dfs":
		s, err := dfs.New(store, opt)
		if err != nil {
			return nil, err
		}
		return s.StepFunc(), nil
	case "mtm1":
		s, err := mtm1.New(store, opt)
		if err != nil {
			return nil, err
		}
		return s.StepFunc(), nil
	case "mtm2":
		s, err := mtm2.New(store, opt)
		if err != nil {
			return nil, err
		}
		return s.StepFunc(), nil
	default:
		return nil, fmt.Errorf("mazesolve: unknown solver %q", name)
	}
}

// render prints store as ASCII art: a wall grid with the solved path
// picked out, clipped to the terminal width when stdout is a terminal.
func render(w *os.File, store *cellstore.Store) {
	width := store.Width()
	if cols, _, err := terminal.GetSize(int(w.Fd())); err == nil && cols > 0 {
		maxCols := (cols - 1) / 2
		if maxCols < width {
			width = maxCols
		}
	}

	for row := 0; row < store.Height(); row++ {
		line := make([]byte, 0, width*2+1)
		for col := 0; col < width; col++ {
			p := geometry.Position{Row: row, Col: col}
			switch {
			case p == geometry.Start(store):
				line = append(line, 'S')
			case p == geometry.End(store):
				line = append(line, 'E')
			case store.Has(p, cellstore.OnPath):
				line = append(line, '*')
			default:
				line = append(line, '.')
			}
			if store.HasEastWall(p) {
				line = append(line, '|')
			} else {
				line = append(line, ' ')
			}
		}
		fmt.Fprintln(w, string(line))

		wallLine := make([]byte, 0, width*2+1)
		for col := 0; col < width; col++ {
			p := geometry.Position{Row: row, Col: col}
			if store.HasSouthWall(p) {
				wallLine = append(wallLine, '-', '-')
			} else {
				wallLine = append(wallLine, ' ', ' ')
			}
		}
		fmt.Fprintln(w, string(wallLine))
	}
}
