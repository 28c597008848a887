package dfs_test

import (
	"testing"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/solver"
	"github.com/arcwalk/mazewalk/solver/dfs"
)

// BenchmarkDFS_OpenGrid runs DFS to completion on an MxM open grid, which
// for DFS (South probed first) means a single straight probe down the
// middle column from Start to End with no backtracking.
func BenchmarkDFS_OpenGrid(b *testing.B) {
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
		s, _ := dfs.New(store)
		_, _ = solver.NewDriver(s.StepFunc()).Run(0)
	}
}
