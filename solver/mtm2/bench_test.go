package mtm2_test

import (
	"testing"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/mtm2"
)

// BenchmarkMTM2_OpenGrid races all six walkers to completion on an MxM
// open grid, the scenario with the most junction branching for each
// walker's NextMT claim/fallback scan to chew through.
func BenchmarkMTM2_OpenGrid(b *testing.B) {
	const M = 50
	store, err := cellstore.New(M, M)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(M * M))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Reset()
		s, _ := mtm2.New(store)
		_, _ = solver.NewDriver(s.StepFunc()).Run(0)
	}
}
