package orchestrator

import (
	"context"
	"testing"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/gpu/cpu"
	"github.com/gofind/gofind/internal/regex"
)

type errFixed string

func (e errFixed) Error() string { return string(e) }

const errBoom = errFixed("boom")

// boomDriver always fails, used to exercise the CPU fallback path.
type boomDriver struct{}

func (boomDriver) Init(ctx context.Context) error { return nil }
func (boomDriver) Capability() gpu.Capability {
	return gpu.Capability{Backend: gpu.BackendMetal, Available: true}
}
func (boomDriver) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, errBoom
}
func (boomDriver) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, errBoom
}
func (boomDriver) Close() error { return nil }

func TestMatchNamesFallsBackOnDriverFailure(t *testing.T) {
	scalar := cpu.NewScalar()
	_ = scalar.Init(context.Background())

	o := New(map[gpu.Backend]gpu.Driver{gpu.BackendMetal: boomDriver{}}, scalar)
	paths := [][]byte{[]byte("readme.txt"), []byte("main.go"), []byte("readme.md")}

	matched, err := o.MatchNames(context.Background(), gpu.BackendMetal, []byte("readme.*"), fsmatch.Options(0), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches via CPU fallback, got %d: %v", len(matched), matched)
	}
}

func TestChunkPathsRespectsMaxBatchPaths(t *testing.T) {
	paths := make([][]byte, fsmatch.MaxBatchPaths+10)
	for i := range paths {
		paths[i] = []byte("x")
	}
	chunks := chunkPaths(paths)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != fsmatch.MaxBatchPaths {
		t.Fatalf("expected first chunk to be exactly MaxBatchPaths, got %d", len(chunks[0]))
	}
}
