// Package bfs implements the single-walker breadth-first solver (spec
// §4.3): a FIFO frontier explored in fixed S,W,E,N neighbor order, with
// parent-pointer path reconstruction once End is dequeued.
//
// BFS is the baseline, pedagogical solver: unlike the multi-walker
// solvers, it discovers cells in order of non-decreasing distance from
// Start, so the path it reconstructs is a shortest path. The visit order
// it records is a discovery index (Start is 0), not the distance itself.
package bfs

import (
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
)

// neighborOrder is the fixed exploration order BFS probes neighbors in.
var neighborOrder = [4]geometry.Direction{geometry.South, geometry.West, geometry.East, geometry.North}

type mode int

const (
	searching mode = iota
	backtracking
	done
)

// Solver is a single-walker BFS over a cellstore.Store, freshly Reset.
type Solver struct {
	store *cellstore.Store
	opts  solver.Options

	start, end geometry.Position
	queue      []geometry.Position
	head       int
	counter    int32

	m        mode
	path     []geometry.Position
	pathIdx  int
}

// New constructs a BFS solver over store, which must already be Reset.
func New(store *cellstore.Store, opts ...solver.Option) (*Solver, error) {
	if store == nil {
		return nil, solver.ErrStoreNil
	}
	o, err := solver.Apply(opts...)
	if err != nil {
		return nil, err
	}
	start := geometry.Start(store)
	s := &Solver{
		store: store,
		opts:  o,
		start: start,
		end:   geometry.End(store),
		queue: []geometry.Position{start},
	}
	store.Set(start, cellstore.Visited)
	store.SetVisitOrder(start, 0)
	s.counter = 1
	return s, nil
}

// Step advances the solver by one step and returns the resulting phase
// token (spec §6.2-§6.3).
func (s *Solver) Step() solver.Phase {
	switch s.m {
	case searching:
		return s.stepSearch()
	case backtracking:
		return s.stepBacktrack()
	default:
		return solver.NoSolution
	}
}

func (s *Solver) stepSearch() solver.Phase {
	if s.head >= len(s.queue) {
		s.m = done
		s.opts.Logger.Debug().Msg("bfs: queue exhausted without reaching end")
		return solver.NoSolution
	}
	p := s.queue[s.head]
	s.head++

	if p == s.end {
		s.path = s.reconstruct()
		s.pathIdx = 0
		s.m = backtracking
		return solver.Searching
	}

	for _, d := range neighborOrder {
		n := p.Move(d)
		if !geometry.CanMove(s.store, p, d) {
			continue
		}
		if s.store.Has(n, cellstore.Visited) {
			continue
		}
		s.store.Set(n, cellstore.Visited)
		s.store.SetParent(n, geometry.Reverse(d))
		s.store.SetVisitOrder(n, s.counter)
		s.counter++
		s.queue = append(s.queue, n)
	}
	return solver.Searching
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

// reconstruct walks PARENT pointers from End back to Start and returns the
// path in Start->End order.
func (s *Solver) reconstruct() []geometry.Position {
	rev := []geometry.Position{s.end}
	cur := s.end
	for cur != s.start {
		d, ok := s.store.ParentDirection(cur)
		if !ok {
			break
		}
		cur = cur.Move(d)
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// StepFunc adapts Step for use with solver.Driver.
func (s *Solver) StepFunc() solver.StepFunc { return s.Step }
