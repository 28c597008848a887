// Package mtm2 implements the cooperative bidirectional multi-walker DFS
// solver (spec §4.5): three walkers race out from Start ("TB", top-to-
// bottom) and three from End ("BT", bottom-to-top), each single-stepping
// its own JUNCTION/CORRIDOR/BACKTRACK state machine once per round. The
// round scheduler processes walker ids 0..5 in order and stops the instant
// any walker reports a collision with the opposing team's claimed
// territory, then reconstructs the full path in two halves: a plain
// PARENT-pointer walk on the TB side, and a stack-guided segment walk on
// the BT side, which follows the reporting BT walker's own frame stack
// rather than PARENT bits.
package mtm2

import (
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
)

type mode int

const (
	searching mode = iota
	backtracking
	done
)

// Solver is the six-walker cooperative solver over a cellstore.Store,
// freshly Reset.
type Solver struct {
	store *cellstore.Store
	opts  solver.Options

	start, end geometry.Position
	walkers    [6]*walker
	finished   [6]bool

	m       mode
	path    []geometry.Position
	pathIdx int
}

// New constructs an MT-M2 solver over store, which must already be Reset.
// Walkers 0-2 spawn at Start (the TB team); walkers 3-5 spawn at End (the
// BT team).
func New(store *cellstore.Store, opts ...solver.Option) (*Solver, error) {
	if store == nil {
		return nil, solver.ErrStoreNil
	}
	o, err := solver.Apply(opts...)
	if err != nil {
		return nil, err
	}
	start := geometry.Start(store)
	end := geometry.End(store)
	s := &Solver{
		store: store,
		opts:  o,
		start: start,
		end:   end,
	}
	for id := 0; id < 3; id++ {
		s.walkers[id] = newWalker(store, id, start)
	}
	for id := 3; id < 6; id++ {
		s.walkers[id] = newWalker(store, id, end)
	}
	return s, nil
}

// Step advances the solver by one step and returns the resulting phase
// token. In searching mode, one step is one full round: every unfinished
// walker is single-stepped in id order, stopping early the instant a
// collision is reported.
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
	collisionFound := false
	var collisionPos geometry.Position

	for id, w := range s.walkers {
		if s.finished[id] {
			continue
		}
		out, pos := w.step(s.store, s.end)
		switch out {
		case outcomeDead:
			s.finished[id] = true
		case outcomeFoundTarget:
			collisionFound = true
			collisionPos = pos
		}
		if collisionFound {
			break
		}
	}

	if collisionFound {
		s.path = s.reconstruct(collisionPos)
		s.pathIdx = 0
		s.m = backtracking
		return solver.Searching
	}

	allFinished := true
	for _, f := range s.finished {
		if !f {
			allFinished = false
			break
		}
	}
	if allFinished {
		s.m = done
		s.opts.Logger.Debug().Msg("mtm2: every walker exhausted without a collision")
		return solver.NoSolution
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

// reconstruct builds the Start->End path given the cell where two opposing
// walkers' claimed territory first touched (spec §4.5.3).
func (s *Solver) reconstruct(collisionPos geometry.Position) []geometry.Position {
	path := s.reconstructTB(collisionPos)
	path = append(path, s.reconstructBT(collisionPos)...)
	if len(path) == 0 || path[len(path)-1] != s.end {
		path = append(path, s.end)
	}
	return path
}

// reconstructTB finds a cell on the TB side near collisionPos and walks
// PARENT_* pointers back to Start, returning the chain in Start->collision
// order.
func (s *Solver) reconstructTB(collisionPos geometry.Position) []geometry.Position {
	tbCell := collisionPos
	if !s.store.Has(collisionPos, cellstore.VisitedTB) {
		found := false
		for _, d := range geometry.Directions() {
			n := collisionPos.Move(d)
			if s.store.Has(n, cellstore.VisitedTB) {
				tbCell = n
				found = true
				break
			}
		}
		if !found {
			s.opts.Logger.Error().Msg("mtm2: no TB-visited cell adjacent to collision point")
			return []geometry.Position{s.start}
		}
	}

	rev := []geometry.Position{tbCell}
	cur := tbCell
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

// reconstructBT locates the BT walker that owns a cell at or adjacent to
// collisionPos, then walks that walker's frame stack outward, re-deriving
// each corridor segment between consecutive junction frames, to build the
// collision->End chain (spec §4.5.3).
func (s *Solver) reconstructBT(collisionPos geometry.Position) []geometry.Position {
	ownerID, ok := s.findBTOwner(collisionPos)
	if !ok {
		s.opts.Logger.Error().Msg("mtm2: no BT-owned cell at or adjacent to collision point")
		return nil
	}
	stack := s.walkers[ownerID].stack

	k := -1
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].at == collisionPos {
			k = i
			break
		}
	}
	if k < 0 {
		s.opts.Logger.Error().Msg("mtm2: collision point not found in owning BT walker's stack")
		return nil
	}

	var out []geometry.Position
	for i := k; i >= 1; i-- {
		if i != k {
			// stack[k].at is collisionPos, already the last element of the
			// TB half; every other frame boundary is new.
			out = append(out, stack[i].at)
		}
		target := stack[i-1].at
		cur := stack[i].at.Move(stack[i].cameFrom)
		lastStep := stack[i].cameFrom
		for cur != target {
			out = append(out, cur)
			d, found := s.pickForwardDir(cur, lastStep, ownerID, target)
			if !found {
				s.opts.Logger.Error().Msg("mtm2: BT corridor walk stalled during reconstruction")
				return out
			}
			lastStep = d
			cur = cur.Move(d)
		}
	}
	return out
}

// findBTOwner scans collisionPos and its four neighbors, in that order, for
// a cell that is VISITED_BT and owned by a BT walker (id >= 3).
func (s *Solver) findBTOwner(collisionPos geometry.Position) (int, bool) {
	candidates := make([]geometry.Position, 0, 5)
	candidates = append(candidates, collisionPos)
	for _, d := range geometry.Directions() {
		candidates = append(candidates, collisionPos.Move(d))
	}
	for _, c := range candidates {
		if !s.store.Has(c, cellstore.VisitedBT) {
			continue
		}
		if owner, ok := s.store.Owner(c); ok && owner >= 3 {
			return owner, true
		}
	}
	return 0, false
}

// pickForwardDir chooses the next corridor step out of cur while walking a
// BT frame's outbound segment toward target: prefer stepping directly into
// target, then a BT-owned forward direction, then any BT-visited neighbor,
// never reversing the last step.
func (s *Solver) pickForwardDir(cur geometry.Position, lastStep geometry.Direction, ownerID int, target geometry.Position) (geometry.Direction, bool) {
	for _, d := range geometry.Directions() {
		if cur.Move(d) == target && geometry.CanMove(s.store, cur, d) {
			return d, true
		}
	}
	reverseLast := geometry.Reverse(lastStep)

	for _, d := range geometry.Directions() {
		if d == reverseLast || !geometry.CanMove(s.store, cur, d) {
			continue
		}
		n := cur.Move(d)
		if !s.store.Has(n, cellstore.VisitedBT) {
			continue
		}
		if owner, ok := s.store.Owner(n); ok && owner == ownerID {
			return d, true
		}
	}
	for _, d := range geometry.Directions() {
		if d == reverseLast || !geometry.CanMove(s.store, cur, d) {
			continue
		}
		if s.store.Has(cur.Move(d), cellstore.VisitedBT) {
			return d, true
		}
	}
	return geometry.Uninitialized, false
}

// StepFunc adapts Step for use with solver.Driver.
func (s *Solver) StepFunc() solver.StepFunc { return s.Step }
