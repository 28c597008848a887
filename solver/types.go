// Package solver defines the phase-token contract every maze solver in this
// module emits (spec §6.2-§6.3), the functional options shared across
// solver constructors, and Driver, a small pull-based iterator that turns a
// solver's step function into a sequence a caller — CLI or test — can drain.
package solver

import (
	"errors"

	"github.com/rs/zerolog"
)

// Sentinel errors shared by the solver subpackages.
var (
	// ErrStoreNil is returned when a solver is constructed with a nil cell store.
	ErrStoreNil = errors.New("solver: cell store is nil")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")
	// ErrStepBudgetExceeded is returned by Driver.Run when a solver fails to
	// reach a terminal phase within its configured step budget — a defensive
	// bound, never expected to trigger on a correct solver/maze pair (spec §8
	// invariant: unsolvable mazes terminate within cell-count x constant steps).
	ErrStepBudgetExceeded = errors.New("solver: step budget exceeded without reaching a terminal phase")
)

// Phase is one of the four tokens a solver's step function may return.
type Phase int

const (
	// Searching indicates the next step will advance exploration.
	Searching Phase = iota
	// Backtracking indicates the solver is in its path-marking phase.
	Backtracking
	// Finished is terminal: End is on the path and no more cells will be mutated.
	Finished
	// NoSolution is terminal: no path was found; cell state holds partial exploration.
	NoSolution
)

// String renders a Phase for logging and test failure messages.
func (p Phase) String() string {
	switch p {
	case Searching:
		return "SEARCHING"
	case Backtracking:
		return "BACKTRACKING"
	case Finished:
		return "FINISHED"
	case NoSolution:
		return "NO_SOLUTION"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether p ends a solver's step sequence.
func (p Phase) Terminal() bool { return p == Finished || p == NoSolution }

// Option configures a solver via functional arguments, mirroring the
// WithXxx pattern used throughout this module's solver constructors.
type Option func(*Options)

// Options holds parameters shared by every solver constructor. Each solver
// keeps the applied Options as a field; no solver-specific options are
// defined.
type Options struct {
	// Logger receives structured diagnostics (the no-solution outcome, soft
	// reconstruction errors). Defaults to a disabled logger.
	Logger zerolog.Logger
	// StepBudget records a step cap; zero means no cap. Neither the solvers
	// nor Driver read it: Driver.Run's cap is the budget passed to Run.
	StepBudget int

	err error
}

// DefaultOptions returns Options with a disabled logger and no step budget.
func DefaultOptions() Options {
	return Options{
		Logger:     zerolog.Nop(),
		StepBudget: 0,
	}
}

// WithLogger installs a structured logger for solver diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithStepBudget sets Options.StepBudget (which Driver.Run does not read).
// A negative budget is recorded as ErrOptionViolation.
func WithStepBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrOptionViolation
			return
		}
		o.StepBudget = n
	}
}

// Apply folds opts into a fresh DefaultOptions, returning ErrOptionViolation
// if any option recorded an internal error.
func Apply(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	return o, nil
}
