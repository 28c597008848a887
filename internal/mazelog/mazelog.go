// Package mazelog centralizes this module's structured-logging setup: a
// single zerolog.Logger construction shared by cmd/mazesolve and the loader,
// configured for human-readable console output in a terminal and plain JSON
// otherwise.
package mazelog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh/terminal"
)

func isTerminal(f *os.File) bool {
	return terminal.IsTerminal(int(f.Fd()))
}

// New builds a logger writing to w at the given level. When w is a
// terminal, output is rendered through zerolog's ConsoleWriter; otherwise
// it is newline-delimited JSON, suitable for piping or log aggregation.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	var out io.Writer = w
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Default returns a logger writing to stderr at info level, the same
// logger cmd/mazesolve builds with New when -v is not given.
func Default() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}
