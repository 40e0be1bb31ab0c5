// Package gpu defines the Driver interface every GPU backend (Metal,
// Vulkan) and CPU fallback (internal/gpu/cpu) implements, plus the
// capability probing the selector (internal/selector) and orchestrator
// (internal/orchestrator) use to choose and size batches against a
// concrete device.
//
// Every Driver is a scoped, owned resource: callers construct one with
// a package-level constructor, Init it, use it, and Close it. There is
// no global/default Driver singleton — a pattern grounded in the
// teacher's matcher constructors (NewHyperscan, NewVectorscan), each of
// which returns an owned value rather than mutating package state.
package gpu

import (
	"context"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/regex"
)

// Backend identifies one matching engine implementation.
type Backend uint8

const (
	BackendScalar Backend = iota
	BackendSIMD
	BackendMetal
	BackendVulkan
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendSIMD:
		return "simd"
	case BackendMetal:
		return "metal"
	case BackendVulkan:
		return "vulkan"
	default:
		return "unknown"
	}
}

// Capability describes what a Driver's device can do, used by the
// selector to score whether dispatching to it is worthwhile (§4.5).
type Capability struct {
	Backend             Backend
	Available           bool
	MaxWorkgroupThreads uint32
	MaxBufferBytes       uint64
	UnifiedMemory        bool // true for Apple Silicon / integrated GPUs
	HighPerformance      bool // discrete GPU or equivalent compute throughput tier
}

// Driver is one matching engine: a scalar/SIMD CPU implementation, or a
// real GPU device reached through cgo. MatchNames and MatchRegex both
// take ownership of the batch for the duration of the call and return a
// newly allocated Results; the batch itself is not modified.
type Driver interface {
	// Init acquires whatever device/context resources this Driver needs.
	// It must be called once before any Match call and is not safe to
	// call concurrently with itself.
	Init(ctx context.Context) error

	// Capability reports this Driver's device capability. Valid only
	// after a successful Init.
	Capability() Capability

	// MatchNames runs a compiled glob pattern against every name in
	// batch, returning one Result per candidate in batch order.
	MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error)

	// MatchRegex runs a compiled regex program against every name in
	// batch.
	MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error)

	// Close releases device/context resources. A Driver is not usable
	// after Close.
	Close() error
}
