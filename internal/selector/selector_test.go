package selector

import (
	"testing"

	"github.com/gofind/gofind/internal/gpu"
)

func TestChooseSmallWorkloadStaysOnCPU(t *testing.T) {
	available := []gpu.Backend{gpu.BackendScalar, gpu.BackendSIMD, gpu.BackendMetal}
	caps := map[gpu.Backend]gpu.Capability{
		gpu.BackendMetal: {Backend: gpu.BackendMetal, Available: true, HighPerformance: true},
	}
	got := Choose(100, Complexity{}, available, caps, nil)
	if got != gpu.BackendSIMD {
		t.Fatalf("expected SIMD for small workload, got %v", got)
	}
}

func TestChooseLargeWorkloadPrefersGPU(t *testing.T) {
	available := []gpu.Backend{gpu.BackendScalar, gpu.BackendSIMD, gpu.BackendMetal}
	caps := map[gpu.Backend]gpu.Capability{
		gpu.BackendMetal: {Backend: gpu.BackendMetal, Available: true, HighPerformance: true, UnifiedMemory: true},
	}
	got := Choose(50000, Complexity{StarCount: 2, ClassCount: 1}, available, caps, nil)
	if got != gpu.BackendMetal {
		t.Fatalf("expected metal for large complex workload, got %v", got)
	}
}

func TestChooseForcedBackendWins(t *testing.T) {
	available := []gpu.Backend{gpu.BackendScalar, gpu.BackendSIMD}
	forced := gpu.BackendScalar
	got := Choose(50000, Complexity{}, available, nil, &forced)
	if got != gpu.BackendScalar {
		t.Fatalf("expected forced scalar backend, got %v", got)
	}
}

func TestChooseNoGPUAvailableFallsBackToCPU(t *testing.T) {
	available := []gpu.Backend{gpu.BackendScalar, gpu.BackendSIMD}
	got := Choose(100000, Complexity{StarCount: 5}, available, nil, nil)
	if got != gpu.BackendSIMD {
		t.Fatalf("expected SIMD fallback with no GPU available, got %v", got)
	}
}
