package mtm1_test

import (
	"fmt"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/mtm1"
)

// ExampleNew solves a 3x3 open grid by running the forward walker and the
// backward BFS together, one round at a time, with no row-band pruning
// candidate along the way (every interior cell keeps two or more exits).
func ExampleNew() {
	store, _ := cellstore.New(3, 3)
	s, _ := mtm1.New(store)

	phases, _ := solver.NewDriver(s.StepFunc()).Run(0)
	fmt.Println(phases[len(phases)-1])

	var path []geometry.Position
	store.Positions(func(p geometry.Position) {
		if store.Has(p, cellstore.OnPath) {
			path = append(path, p)
		}
	})
	fmt.Println(path)
	// Output:
	// FINISHED
	// [{0 1} {1 1} {2 1}]
}
