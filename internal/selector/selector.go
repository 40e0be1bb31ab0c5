// Package selector implements the auto-backend scoring policy from §4.5:
// given a workload size, a pattern's complexity, and which backends are
// actually available on this machine, choose the Backend expected to
// finish fastest.
package selector

import "github.com/gofind/gofind/internal/gpu"

// Complexity summarizes the shape of a compiled pattern for scoring
// purposes — cheap to compute from the glob bytes or regex AST without
// fully re-deriving cost.
type Complexity struct {
	StarCount  int // number of '*' wildcards (glob) or unbounded repeats (regex)
	ClassCount int // number of '[...]' character classes
	IsRegex    bool
}

// minGPUWorthwhilePaths is the batch size below which per-dispatch GPU
// transfer/sync overhead is assumed to dominate any parallel speedup
// (§4.5's documented threshold).
const minGPUWorthwhilePaths = 1024

// score weights, tuned so that a handful of wildcards/classes meaningfully
// shifts the decision without a single class outweighing workload size.
const (
	complexityStarWeight  = 40
	complexityClassWeight = 60
	complexityRegexWeight = 80
)

// Choose picks the Backend expected to be fastest for a workload of
// numPaths candidate names with the given pattern complexity, among the
// backends reported available. forced, if non-nil, is returned unchanged
// as long as it appears in available (an explicit --backend flag always
// wins).
func Choose(numPaths int, complexity Complexity, available []gpu.Backend, caps map[gpu.Backend]gpu.Capability, forced *gpu.Backend) gpu.Backend {
	if forced != nil && contains(available, *forced) {
		return *forced
	}

	if numPaths < minGPUWorthwhilePaths {
		return preferCPU(available)
	}

	complexityScore := complexity.StarCount*complexityStarWeight + complexity.ClassCount*complexityClassWeight
	if complexity.IsRegex {
		complexityScore += complexityRegexWeight
	}

	best := preferCPU(available)
	bestScore := -1
	for _, b := range available {
		if b != gpu.BackendMetal && b != gpu.BackendVulkan {
			continue
		}
		cap, ok := caps[b]
		if !ok || !cap.Available {
			continue
		}
		score := numPaths + complexityScore
		if cap.HighPerformance {
			score += 500
		}
		if cap.UnifiedMemory {
			score += 100 // cheaper host->device transfer
		}
		if score > bestScore {
			bestScore = score
			best = b
		}
	}
	return best
}

func preferCPU(available []gpu.Backend) gpu.Backend {
	if contains(available, gpu.BackendSIMD) {
		return gpu.BackendSIMD
	}
	return gpu.BackendScalar
}

func contains(bs []gpu.Backend, target gpu.Backend) bool {
	for _, b := range bs {
		if b == target {
			return true
		}
	}
	return false
}
