package geometry_test

import (
	"fmt"

	"github.com/arcwalk/mazewalk/geometry"
)

// stubGrid is a minimal geometry.Grid with one wall, enough to demonstrate
// CanMove's symmetry without pulling in cellstore.
type stubGrid struct {
	width, height int
	eastWalls     map[geometry.Position]bool
}

func (g stubGrid) Width() int  { return g.width }
func (g stubGrid) Height() int { return g.height }
func (g stubGrid) HasEastWall(p geometry.Position) bool {
	return g.eastWalls[p]
}
func (g stubGrid) HasSouthWall(geometry.Position) bool { return false }

// ExampleCanMove demonstrates the east/south-wall-only representation: a
// wall recorded on a cell's east edge blocks both that cell's eastward move
// and its neighbor's westward move.
func ExampleCanMove() {
	g := stubGrid{
		width: 3, height: 1,
		eastWalls: map[geometry.Position]bool{{Row: 0, Col: 0}: true},
	}
	fmt.Println(geometry.CanMove(g, geometry.Position{Row: 0, Col: 0}, geometry.East))
	fmt.Println(geometry.CanMove(g, geometry.Position{Row: 0, Col: 1}, geometry.West))
	fmt.Println(geometry.CanMove(g, geometry.Position{Row: 0, Col: 1}, geometry.East))
	// Output:
	// false
	// false
	// true
}

// ExampleStart demonstrates the fixed Start/End convention: both sit in
// the middle column, on the top and bottom row respectively.
func ExampleStart() {
	g := stubGrid{width: 5, height: 5}
	fmt.Println(geometry.Start(g))
	fmt.Println(geometry.End(g))
	// Output:
	// {0 2}
	// {4 2}
}
