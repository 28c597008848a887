package mtm2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/mtm2"
)

func run(t *testing.T, s *mtm2.Solver, budget int) ([]solver.Phase, error) {
	t.Helper()
	return solver.NewDriver(s.StepFunc()).Run(budget)
}

// buildTwoBranch builds a 3x5 grid where Start=(0,1) and End=(4,1) each sit
// at a three-way junction (their team's three walkers fan out east, south,
// west and north, east, west respectively), but the middle column between
// rows 1-3 is walled down to a plain two-way corridor so the TB and BT
// walkers that head toward each other meet in a single, fully deterministic
// collision at (2,1): the spec's "two-branch symmetric" scenario.
func buildTwoBranch(t *testing.T) *cellstore.Store {
	t.Helper()
	store, err := cellstore.New(3, 5)
	require.NoError(t, err)
	for row := 1; row <= 3; row++ {
		store.SetEastWall(geometry.Position{Row: row, Col: 0})
		store.SetEastWall(geometry.Position{Row: row, Col: 1})
	}
	return store
}

func TestTwoBranchSymmetricMeetsInTheMiddle(t *testing.T) {
	store := buildTwoBranch(t)
	s, err := mtm2.New(store)
	require.NoError(t, err)
	phases, err := run(t, s, 0)
	require.NoError(t, err)
	require.Equal(t, solver.Finished, phases[len(phases)-1])

	want := []geometry.Position{
		{Row: 0, Col: 1},
		{Row: 1, Col: 1},
		{Row: 2, Col: 1},
		{Row: 3, Col: 1},
		{Row: 4, Col: 1},
	}
	var got []geometry.Position
	store.Positions(func(p geometry.Position) {
		if store.Has(p, cellstore.OnPath) {
			got = append(got, p)
		}
	})
	assert.ElementsMatch(t, want, got, "the path must cover every cell of the straight corridor, no duplicates")
	assert.True(t, store.Has(geometry.Position{Row: 0, Col: 1}, cellstore.OnPath))
	assert.True(t, store.Has(geometry.Position{Row: 4, Col: 1}, cellstore.OnPath))
}

// TestCorridorOnlyStillTerminates builds a maze with no branching at all
// (width 1): every walker of both teams is forced down the same single
// corridor, so all three same-team walkers claim every cell in lockstep and
// the store's Owner() bookkeeping for the shared corridor is ambiguous by
// the time a collision is found (spec's Design Notes flag exactly this as a
// reconstruction soft spot for corridor-only mazes). The solver must still
// reach FINISHED with Start and End on the path, even if the BT-side half
// of reconstruction comes up short on an interior cell.
func TestCorridorOnlyStillTerminates(t *testing.T) {
	store, err := cellstore.New(1, 4)
	require.NoError(t, err)
	s, err := mtm2.New(store)
	require.NoError(t, err)
	phases, err := run(t, s, 0)
	require.NoError(t, err)
	require.Equal(t, solver.Finished, phases[len(phases)-1])

	assert.True(t, store.Has(geometry.Position{Row: 0, Col: 0}, cellstore.OnPath))
	assert.True(t, store.Has(geometry.Position{Row: 3, Col: 0}, cellstore.OnPath))
}

func Test1x1StartEqualsEnd(t *testing.T) {
	store, err := cellstore.New(1, 1)
	require.NoError(t, err)
	s, err := mtm2.New(store)
	require.NoError(t, err)
	phases, err := run(t, s, 10)
	require.NoError(t, err)
	assert.Equal(t, solver.Finished, phases[len(phases)-1])
}

func TestWalledOffStartYieldsNoSolution(t *testing.T) {
	store, err := cellstore.New(1, 2)
	require.NoError(t, err)
	store.SetSouthWall(geometry.Position{Row: 0, Col: 0})

	s, err := mtm2.New(store)
	require.NoError(t, err)
	phases, err := run(t, s, 100)
	require.NoError(t, err)
	assert.Equal(t, solver.NoSolution, phases[len(phases)-1])
}

// TestStoreNilRejected checks the nil-store guard shared by every solver
// constructor.
func TestStoreNilRejected(t *testing.T) {
	_, err := mtm2.New(nil)
	assert.ErrorIs(t, err, solver.ErrStoreNil)
}
