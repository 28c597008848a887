package mtm2_test

import (
	"fmt"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/mtm2"
)

// ExampleNew solves a 3x5 grid where Start and End each sit at a three-way
// junction but the middle column is narrowed to a single corridor, so the
// TB and BT walkers that take the middle column meet in one deterministic
// collision halfway down.
func ExampleNew() {
	store, _ := cellstore.New(3, 5)
	for row := 1; row <= 3; row++ {
		store.SetEastWall(geometry.Position{Row: row, Col: 0})
		store.SetEastWall(geometry.Position{Row: row, Col: 1})
	}
	s, _ := mtm2.New(store)

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
	// 5
}
