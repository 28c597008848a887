// Package mtm1 implements the row-banded cooperative pruning pipeline (spec
// §4.6): four pruners, each owning a disjoint contiguous row band, flood-
// fill dead-end corridors down to PRUNED leaves while a forward walker
// coasts down the surviving skeleton from Start and a backward BFS expands
// from End. Every round steps all four pruners, the walker, and the BFS
// once each; the search stops after the first round in which the walker
// reaches End, the BFS reaches Start, or the walker lands on a cell the BFS
// has already tagged with a PARENT_* hint ("overlap").
package mtm1

import (
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
)

// bandCount is fixed at 4, per spec §4.6's row-partition formula.
const bandCount = 4

type mode int

const (
	searching mode = iota
	backtracking
	done
)

type pruneMode int

const (
	scanning pruneMode = iota
	pruningPhase
)

// pruner owns one contiguous row band [startRow, endRow) and flood-fills
// dead-end corridors within it.
type pruner struct {
	id               int
	startRow, endRow int

	phase   pruneMode
	scanRow int

	stack   []geometry.Position // LIFO, local candidates
	inbound []geometry.Position // FIFO, candidates handed off by a neighboring band
}

func (b *pruner) owns(p geometry.Position) bool {
	return p.Row >= b.startRow && p.Row < b.endRow
}

// bandBounds computes the [start, end) row range for band i of n bands
// spanning height rows, distributing the height%n remainder one row at a
// time to the earliest bands.
func bandBounds(height, n, i int) (int, int) {
	base := height / n
	rem := height % n
	start := i*base + minInt(i, rem)
	end := (i+1)*base + minInt(i+1, rem)
	return start, end
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Solver is the four-pruner pipeline plus its forward/backward walk over a
// cellstore.Store, freshly Reset.
type Solver struct {
	store *cellstore.Store
	opts  solver.Options

	start, end geometry.Position
	pruners    [bandCount]*pruner

	// walker state
	walkerCurr     geometry.Position
	walkerCameFrom geometry.Direction
	walkerPath     []geometry.Direction
	walkerDone     bool
	overlapAt      geometry.Position
	overlapFound   bool
	walkerDeadEnd  bool

	// backward BFS state
	bfsQueue []geometry.Position
	bfsHead  int
	bfsDone  bool

	firstExit bool

	m       mode
	path    []geometry.Position
	pathIdx int
}

// New constructs an MT-M1 solver over store, which must already be Reset.
func New(store *cellstore.Store, opts ...solver.Option) (*Solver, error) {
	if store == nil {
		return nil, solver.ErrStoreNil
	}
	o, err := solver.Apply(opts...)
	if err != nil {
		return nil, err
	}
	s := &Solver{
		store: store,
		opts:  o,
		start: geometry.Start(store),
		end:   geometry.End(store),
	}
	for i := range s.pruners {
		start, end := bandBounds(store.Height(), bandCount, i)
		s.pruners[i] = &pruner{id: i, startRow: start, endRow: end, scanRow: start}
	}

	s.walkerCurr = s.start
	s.walkerCameFrom = geometry.Uninitialized

	s.bfsQueue = []geometry.Position{s.end}
	s.store.SetVisitOrder(s.end, 0)

	return s, nil
}

// availableExcludingPruned returns, in fixed N,E,S,W order, the directions
// out of p that are walkable and whose neighbor is not PRUNED.
func (s *Solver) availableExcludingPruned(p geometry.Position) []geometry.Direction {
	var out []geometry.Direction
	for _, d := range geometry.Directions() {
		if !geometry.CanMove(s.store, p, d) {
			continue
		}
		if s.store.Has(p.Move(d), cellstore.Pruned) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *Solver) bandFor(p geometry.Position) *pruner {
	for _, b := range s.pruners {
		if b.owns(p) {
			return b
		}
	}
	return nil
}

// Step advances the solver by one round and returns the resulting phase
// token.
func (s *Solver) Step() solver.Phase {
	switch s.m {
	case searching:
		return s.stepRound()
	case backtracking:
		return s.stepBacktrack()
	default:
		return solver.NoSolution
	}
}

func (s *Solver) stepRound() solver.Phase {
	for _, b := range s.pruners {
		s.stepPruner(b)
	}
	if !s.walkerDone {
		s.stepWalker()
	}
	if !s.bfsDone {
		s.stepBFS()
	}

	switch {
	case s.firstExit:
		s.beginReconstruction()
		return solver.Searching
	case s.overlapFound:
		s.beginReconstruction()
		return solver.Searching
	case s.walkerDone && s.bfsDone:
		s.m = done
		s.opts.Logger.Debug().Msg("mtm1: walker and backward search both finished without a solution")
		return solver.NoSolution
	default:
		return solver.Searching
	}
}

// stepPruner advances b's SCAN or PRUNE state machine by one unit of work.
func (s *Solver) stepPruner(b *pruner) {
	if b.phase == scanning {
		if b.scanRow >= b.endRow {
			b.phase = pruningPhase
			return
		}
		row := b.scanRow
		for col := 0; col < s.store.Width(); col++ {
			p := geometry.Position{Row: row, Col: col}
			if p == s.start || p == s.end {
				continue
			}
			if len(s.availableExcludingPruned(p)) <= 1 {
				b.stack = append(b.stack, p)
			}
		}
		b.scanRow++
		return
	}

	// PRUNE phase.
	if len(b.inbound) > 0 {
		b.stack = append(b.stack, b.inbound...)
		b.inbound = nil
	}
	if len(b.stack) == 0 {
		return
	}
	p := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if s.store.Has(p, cellstore.Pruned) {
		return
	}
	s.store.Set(p, cellstore.Pruned)
	s.store.SetOwner(p, b.id)

	moves := s.availableExcludingPruned(p)
	if len(moves) != 1 {
		return
	}
	n := p.Move(moves[0])
	if n == s.start || n == s.end {
		return
	}
	if len(s.availableExcludingPruned(n)) > 1 {
		return
	}
	nb := s.bandFor(n)
	if nb == b {
		b.stack = append(b.stack, n)
	} else {
		nb.inbound = append(nb.inbound, n)
	}
}

// stepWalker advances the forward walker by one cell, or lets it wait a
// round if its current junction hasn't collapsed to a single exit yet.
func (s *Solver) stepWalker() {
	if _, ok := s.store.ParentDirection(s.walkerCurr); ok {
		s.overlapAt = s.walkerCurr
		s.overlapFound = true
		s.walkerDone = true
		return
	}
	if s.walkerCurr == s.end {
		s.firstExit = true
		s.walkerDone = true
		return
	}

	moves := s.availableExcludingPruned(s.walkerCurr)
	var live []geometry.Direction
	for _, d := range moves {
		if d != s.walkerCameFrom {
			live = append(live, d)
		}
	}
	switch len(live) {
	case 0:
		s.walkerDeadEnd = true
		s.walkerDone = true
	case 1:
		d := live[0]
		s.walkerPath = append(s.walkerPath, d)
		s.walkerCurr = s.walkerCurr.Move(d)
		s.store.Set(s.walkerCurr, cellstore.VisitedTB)
		s.walkerCameFrom = geometry.Reverse(d)
	default:
		// Multiple live exits remain; wait for pruning to collapse them.
	}
}

// stepBFS processes up to two frontier cells, per spec §4.6's backward BFS.
func (s *Solver) stepBFS() {
	for i := 0; i < 2; i++ {
		if s.bfsHead >= len(s.bfsQueue) {
			s.bfsDone = true
			return
		}
		p := s.bfsQueue[s.bfsHead]
		s.bfsHead++
		s.store.Set(p, cellstore.VisitedBT)

		if p == s.start {
			s.firstExit = true
			s.bfsDone = true
			return
		}

		for _, d := range [4]geometry.Direction{geometry.South, geometry.West, geometry.East, geometry.North} {
			if !geometry.CanMove(s.store, p, d) {
				continue
			}
			n := p.Move(d)
			if s.store.Has(n, cellstore.Pruned) {
				continue
			}
			if s.store.VisitOrder(n) != -1 {
				continue
			}
			s.store.SetParent(n, geometry.Reverse(d))
			s.store.SetVisitOrder(n, int32(len(s.bfsQueue)))
			s.bfsQueue = append(s.bfsQueue, n)
		}
	}
}

// beginReconstruction builds the Start->End path: Start, then the walker's
// recorded directions, then PARENT_* hints from the replay's ending cell to
// End (spec §4.6's reconstruction).
func (s *Solver) beginReconstruction() {
	path := []geometry.Position{s.start}
	cur := s.start
	for _, d := range s.walkerPath {
		cur = cur.Move(d)
		path = append(path, cur)
	}

	for cur != s.end {
		d, ok := s.store.ParentDirection(cur)
		if !ok {
			s.opts.Logger.Error().Msg("mtm1: reconstruction stalled before reaching end")
			break
		}
		cur = cur.Move(d)
		path = append(path, cur)
	}

	s.path = path
	s.pathIdx = 0
	s.m = backtracking
}

func (s *Solver) stepBacktrack() solver.Phase {
	p := s.path[s.pathIdx]
	s.store.Set(p, cellstore.OnPath)
	s.pathIdx++
	if s.pathIdx == len(s.path) {
		s.m = done
		return solver.Finished
	}
	return solver.Backtracking
}

// StepFunc adapts Step for use with solver.Driver.
func (s *Solver) StepFunc() solver.StepFunc { return s.Step }
