//go:build !darwin || !cgo

package metal

import (
	"context"
	"fmt"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/regex"
)

// Driver is the non-Darwin/non-cgo stub: every method fails, mirroring
// the teacher's NewHyperscan stub constructor for builds without cgo.
type Driver struct{}

// New constructs a stub Driver. Init always fails.
func New() *Driver { return &Driver{} }

func (d *Driver) Init(ctx context.Context) error {
	return fmt.Errorf("metal backend requires darwin+cgo (build with CGO_ENABLED=1 on macOS)")
}

func (d *Driver) Capability() gpu.Capability {
	return gpu.Capability{Backend: gpu.BackendMetal, Available: false}
}

func (d *Driver) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, fmt.Errorf("metal backend unavailable in this build")
}

func (d *Driver) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, fmt.Errorf("metal backend unavailable in this build")
}

func (d *Driver) Close() error { return nil }
