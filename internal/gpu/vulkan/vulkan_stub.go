//go:build !linux || !cgo

package vulkan

import (
	"context"
	"fmt"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/regex"
)

// Driver is the non-Linux/non-cgo stub.
type Driver struct{}

// New constructs a stub Driver. Init always fails.
func New() *Driver { return &Driver{} }

func (d *Driver) Init(ctx context.Context) error {
	return fmt.Errorf("vulkan backend requires linux+cgo (build with CGO_ENABLED=1)")
}

func (d *Driver) Capability() gpu.Capability {
	return gpu.Capability{Backend: gpu.BackendVulkan, Available: false}
}

func (d *Driver) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, fmt.Errorf("vulkan backend unavailable in this build")
}

func (d *Driver) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	return fsmatch.Results{}, fmt.Errorf("vulkan backend unavailable in this build")
}

func (d *Driver) Close() error { return nil }
