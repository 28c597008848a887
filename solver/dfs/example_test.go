package dfs_test

import (
	"fmt"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/dfs"
)

// ExampleNew solves a single-column "comb" maze: with no branches at all,
// DFS's unique path already visits every cell in the maze.
func ExampleNew() {
	store, _ := cellstore.New(1, 4)
	s, _ := dfs.New(store)

	phases, _ := solver.NewDriver(s.StepFunc()).Run(0)
	fmt.Println(phases[len(phases)-1])

	onPath := 0
	store.Positions(func(p geometry.Position) {
		if store.Has(p, cellstore.OnPath) {
			onPath++
		}
	})
	fmt.Println(onPath)
	// Output:
	// FINISHED
	// 4
}
