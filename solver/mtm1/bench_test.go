package mtm1_test

import (
	"testing"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/mtm1"
)

// BenchmarkMTM1_OpenGrid runs the four row-band pruners, the forward
// walker, and the backward BFS together to completion on an MxM open grid.
func BenchmarkMTM1_OpenGrid(b *testing.B) {
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
		s, _ := mtm1.New(store)
		_, _ = solver.NewDriver(s.StepFunc()).Run(0)
	}
}
