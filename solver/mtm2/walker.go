package mtm2

import (
	"github.com/arcwalk/mazewalk/branches"
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
)

// walkerState is one of the three states a walker's step machine occupies
// (spec §4.5.1).
type walkerState int

const (
	stateJunction walkerState = iota
	stateCorridor
	stateBacktrack
)

// outcome reports what a single walker.step call produced this round.
type outcome int

const (
	outcomeContinue outcome = iota
	outcomeDead
	outcomeFoundTarget
)

// frame is one entry of a walker's private exploration stack: a junction
// it visited, the direction that led back toward the previous frame
// (Uninitialized for the root/spawn frame), and the set of exits it still
// has to try.
type frame struct {
	at       geometry.Position
	cameFrom geometry.Direction
	branches *branches.Branches
}

// walker is one of the six cooperative DFS walkers: three race from Start
// (the "TB" team), three from End (the "BT" team).
type walker struct {
	id    int
	isTB  bool
	stack []frame

	state           walkerState
	corridorDir     geometry.Direction
	targetPos       geometry.Position
	backtrackTarget geometry.Position
}

func newWalker(g geometry.Grid, id int, spawn geometry.Position) *walker {
	return &walker{
		id:   id,
		isTB: id < 3,
		stack: []frame{{
			at:       spawn,
			cameFrom: geometry.Uninitialized,
			branches: branches.New(g, spawn, id),
		}},
		state: stateJunction,
	}
}

// teamBit and rivalBit return this walker's own team-visited bit and the
// opposing team's, respectively.
func (w *walker) teamBit() uint32 {
	if w.isTB {
		return cellstore.VisitedTB
	}
	return cellstore.VisitedBT
}

func (w *walker) rivalBit() uint32 {
	if w.isTB {
		return cellstore.VisitedBT
	}
	return cellstore.VisitedTB
}

// step advances the walker by one unit of work, matching whichever state
// it currently occupies, and returns the outcome plus (for
// outcomeFoundTarget) the colliding position.
func (w *walker) step(store *cellstore.Store, end geometry.Position) (outcome, geometry.Position) {
	switch w.state {
	case stateJunction:
		return w.stepJunction(store, end)
	case stateCorridor:
		return w.stepCorridor(store, end)
	default:
		w.stepBacktrack(store)
		return outcomeContinue, geometry.Position{}
	}
}

func (w *walker) stepJunction(store *cellstore.Store, end geometry.Position) (outcome, geometry.Position) {
	j := &w.stack[len(w.stack)-1]

	// 1. Collision check first, before staking any claim.
	if w.isTB {
		if j.at == end || store.Has(j.at, cellstore.VisitedBT) {
			w.targetPos = j.at
			return outcomeFoundTarget, j.at
		}
	} else if store.Has(j.at, cellstore.VisitedTB) {
		w.targetPos = j.at
		return outcomeFoundTarget, j.at
	}

	// 2. Claim the cell for this team.
	store.Set(j.at, w.teamBit())
	store.SetOwner(j.at, w.id)

	// 3. Ask the branch set for a direction.
	d := j.branches.NextMT(store, j.at)
	if d == geometry.Uninitialized {
		// 4. Exhausted: pop and retire the branch that led here.
		popped := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if geometry.IsJunction(store, popped.at) {
			store.Set(popped.at, cellstore.DeadJunction)
		} else {
			// Clears both team bits, matching step 4's "clear both team
			// bits and VISITED": the generic Visited bit is omitted
			// because MT-M2 never sets it in the first place (it tracks
			// territory with VisitedTB/VisitedBT exclusively).
			store.Clear(popped.at, cellstore.VisitedTB|cellstore.VisitedBT)
		}
		if len(w.stack) == 0 {
			return outcomeDead, geometry.Position{}
		}
		parent := &w.stack[len(w.stack)-1]
		parent.branches.PopCurrentThread(store, parent.at)
		w.state = stateBacktrack
		w.backtrackTarget = parent.at
		w.targetPos = popped.at
		return outcomeContinue, geometry.Position{}
	}

	// 5. A live direction: move into CORRIDOR.
	w.state = stateCorridor
	w.corridorDir = d
	w.targetPos = j.at
	return outcomeContinue, geometry.Position{}
}

func (w *walker) stepCorridor(store *cellstore.Store, end geometry.Position) (outcome, geometry.Position) {
	next := w.targetPos.Move(w.corridorDir)
	parentBack := geometry.Reverse(w.corridorDir)

	collision := false
	if w.isTB {
		collision = next == end || store.Has(next, cellstore.VisitedBT)
	} else {
		collision = store.Has(next, cellstore.VisitedTB)
	}
	if collision {
		w.stack = append(w.stack, frame{
			at:       next,
			cameFrom: parentBack,
			branches: branches.New(store, next, w.id),
		})
		w.targetPos = next
		return outcomeFoundTarget, next
	}

	store.Set(next, w.teamBit())
	store.SetOwner(next, w.id)
	store.SetParent(next, parentBack)
	w.targetPos = next

	b := branches.New(store, next, w.id)
	b.Remove(parentBack)
	if b.Count() != 1 {
		w.stack = append(w.stack, frame{at: next, cameFrom: parentBack, branches: b})
		w.state = stateJunction
		return outcomeContinue, geometry.Position{}
	}
	w.corridorDir = b.Next()
	return outcomeContinue, geometry.Position{}
}

func (w *walker) stepBacktrack(store *cellstore.Store) {
	if !geometry.IsJunction(store, w.targetPos) {
		store.Clear(w.targetPos, cellstore.VisitedTB|cellstore.VisitedBT)
	}
	if w.targetPos == w.backtrackTarget {
		w.state = stateJunction
		return
	}
	d, ok := store.ParentDirection(w.targetPos)
	if !ok {
		w.state = stateJunction
		return
	}
	w.targetPos = w.targetPos.Move(d)
}
