package loader_test

import (
	"bytes"
	"testing"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/loader"
)

// BenchmarkEncode measures the per-row word-packing cost of writing out a
// freshly solved maze.
func BenchmarkEncode(b *testing.B) {
	const M = 100
	store, err := cellstore.New(M, M)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(M * M))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		_ = loader.Encode(&buf, store)
	}
}
