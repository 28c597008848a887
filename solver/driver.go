package solver

// StepFunc advances a solver by exactly one step and returns the phase
// token for that step (spec §6.2). Implementations mutate their cell store
// as a single transaction per call.
type StepFunc func() Phase

// Driver turns a solver's StepFunc into a pull-based iterator and counts
// steps taken, so callers (the CLI, and tests asserting the §8 "bounded
// number of steps" property) don't need to track termination themselves.
type Driver struct {
	step  StepFunc
	steps int
	last  Phase
	done  bool
}

// NewDriver wraps step. The returned Driver has taken no steps yet.
func NewDriver(step StepFunc) *Driver {
	return &Driver{step: step}
}

// Next pulls one more step, unless the sequence already reached a terminal
// phase, in which case it returns the last phase again and ok=false. ok=true
// means a new step was actually taken.
func (d *Driver) Next() (phase Phase, ok bool) {
	if d.done {
		return d.last, false
	}
	d.last = d.step()
	d.steps++
	if d.last.Terminal() {
		d.done = true
	}
	return d.last, true
}

// Steps returns the number of steps taken so far.
func (d *Driver) Steps() int { return d.steps }

// Done reports whether the sequence has reached a terminal phase.
func (d *Driver) Done() bool { return d.done }

// Run drains the sequence to completion, recording every phase token, and
// returns ErrStepBudgetExceeded if budget > 0 and the terminal phase isn't
// reached within that many steps.
func (d *Driver) Run(budget int) ([]Phase, error) {
	var tokens []Phase
	for {
		phase, advanced := d.Next()
		if !advanced {
			break
		}
		tokens = append(tokens, phase)
		if phase.Terminal() {
			break
		}
		if budget > 0 && d.steps >= budget {
			return tokens, ErrStepBudgetExceeded
		}
	}
	return tokens, nil
}
