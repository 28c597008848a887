// Package dfs implements the single-walker depth-first solver (spec §4.4):
// a LIFO stack explored in fixed S,E,W,N neighbor order, erasing the
// "grey trail" (VISITED, ON_STACK) on backtrack and marking DEAD_JUNCTION
// on any true junction whose exploration is exhausted.
package dfs

import (
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
)

// neighborOrder is the fixed exploration order DFS probes neighbors in.
var neighborOrder = [4]geometry.Direction{geometry.South, geometry.East, geometry.West, geometry.North}

type mode int

const (
	searching mode = iota
	backtracking
	done
)

// frame is one entry of the DFS stack: the cell, and the direction the
// walker took to arrive at it (kept for parity with spec §4.4's stack of
// (position, incoming_direction) pairs; the incoming direction is also
// recoverable from the cell's PARENT_* bit).
type frame struct {
	pos      geometry.Position
	incoming geometry.Direction
}

// Solver is a single-walker DFS over a cellstore.Store, freshly Reset.
type Solver struct {
	store *cellstore.Store
	opts  solver.Options

	start, end geometry.Position
	stack      []frame
	counter    int32

	m       mode
	path    []geometry.Position
	pathIdx int
}

// New constructs a DFS solver over store, which must already be Reset.
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
		stack: []frame{{pos: start, incoming: geometry.Uninitialized}},
	}
	store.Set(start, cellstore.Visited|cellstore.OnStack)
	store.SetVisitOrder(start, 0)
	s.counter = 1
	return s, nil
}

// Step advances the solver by one step and returns the resulting phase token.
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
	if len(s.stack) == 0 {
		s.m = done
		s.opts.Logger.Debug().Msg("dfs: stack exhausted without reaching end")
		return solver.NoSolution
	}
	top := s.stack[len(s.stack)-1]
	if top.pos == s.end {
		s.path = s.reconstruct()
		s.pathIdx = 0
		s.m = backtracking
		return solver.Searching
	}

	for _, d := range neighborOrder {
		if !geometry.CanMove(s.store, top.pos, d) {
			continue
		}
		n := top.pos.Move(d)
		// The visit order, not the Visited bit, marks a cell as already
		// discovered: Visited is erased on backtrack, the visit order is not.
		if s.store.VisitOrder(n) != -1 {
			continue
		}
		s.store.Set(n, cellstore.Visited|cellstore.OnStack)
		s.store.SetParent(n, geometry.Reverse(d))
		s.store.SetVisitOrder(n, s.counter)
		s.counter++
		s.stack = append(s.stack, frame{pos: n, incoming: d})
		return solver.Searching
	}

	// No unvisited neighbor: pop and erase the grey trail.
	s.stack = s.stack[:len(s.stack)-1]
	s.store.Clear(top.pos, cellstore.OnStack|cellstore.Visited)
	if geometry.IsJunction(s.store, top.pos) {
		s.store.Set(top.pos, cellstore.DeadJunction)
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
// path in Start->End order, identical to the bfs package's reconstruction.
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
