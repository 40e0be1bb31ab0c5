// Package orchestrator drives one matching run across however many
// batches a candidate-name list needs to be split into (§3's 64K-path /
// 64MB-byte batch limits), dispatching each batch to a chosen Backend and
// falling back to the CPU scalar driver on any GPU failure, without
// double-counting or losing results when that happens.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/regex"
)

// dispatchState names one step of a single batch's lifecycle, used only
// for diagnostics through the Trace hook (cmd/gofind leaves Trace nil,
// so -v does not print these) — the orchestrator does not branch on it
// beyond the linear sequence below.
type dispatchState int

const (
	stateBuilding dispatchState = iota
	statePacked
	stateEncoded
	stateSubmitted
	stateComplete
	stateReadback
	stateDone
	stateFailed
)

func (s dispatchState) String() string {
	switch s {
	case stateBuilding:
		return "BUILDING"
	case statePacked:
		return "PACKED"
	case stateEncoded:
		return "ENCODED"
	case stateSubmitted:
		return "SUBMITTED"
	case stateComplete:
		return "COMPLETE"
	case stateReadback:
		return "READBACK"
	case stateDone:
		return "DONE"
	default:
		return "FAILED"
	}
}

// Trace receives one dispatchState transition per batch, per backend
// attempt. Orchestrator.Trace may be left nil to disable tracing.
type Trace func(backend gpu.Backend, batchIdx int, state dispatchState)

// Orchestrator owns one Driver per Backend it was constructed with, plus
// a dedicated CPU fallback used whenever a GPU dispatch fails partway
// through a run.
type Orchestrator struct {
	drivers  map[gpu.Backend]gpu.Driver
	fallback gpu.Driver
	Trace    Trace
}

// New constructs an Orchestrator. fallback is used whenever a dispatch to
// one of drivers fails; it is typically the scalar or SIMD CPU driver,
// which never fails.
func New(drivers map[gpu.Backend]gpu.Driver, fallback gpu.Driver) *Orchestrator {
	return &Orchestrator{drivers: drivers, fallback: fallback}
}

func (o *Orchestrator) trace(b gpu.Backend, idx int, s dispatchState) {
	if o.Trace != nil {
		o.Trace(b, idx, s)
	}
}

// MatchNames runs a compiled glob pattern against every path in paths
// using backend, splitting into §3-sized batches and falling back to the
// CPU driver per-batch on failure. The returned indices are global
// positions into paths.
func (o *Orchestrator) MatchNames(ctx context.Context, backend gpu.Backend, pattern []byte, opts fsmatch.Options, paths [][]byte) ([]int, error) {
	driver, ok := o.drivers[backend]
	if !ok {
		return nil, fmt.Errorf("orchestrator: no driver registered for backend %v", backend)
	}

	var matched []int
	base := uint32(0)
	batchIdx := 0
	for _, chunk := range chunkPaths(paths) {
		o.trace(backend, batchIdx, stateBuilding)
		batch, err := fsmatch.NewBatch(chunk, base)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: building batch %d: %w", batchIdx, err)
		}
		o.trace(backend, batchIdx, statePacked)
		o.trace(backend, batchIdx, stateEncoded)
		o.trace(backend, batchIdx, stateSubmitted)

		res, err := driver.MatchNames(ctx, pattern, opts, batch)
		if err != nil {
			o.trace(backend, batchIdx, stateFailed)
			res, err = o.fallback.MatchNames(ctx, pattern, opts, batch)
			if err != nil {
				return nil, fmt.Errorf("orchestrator: batch %d failed on both %v and fallback: %w", batchIdx, backend, err)
			}
		}
		o.trace(backend, batchIdx, stateComplete)
		o.trace(backend, batchIdx, stateReadback)

		for _, idx := range res.Compact(base) {
			matched = append(matched, int(idx))
		}
		o.trace(backend, batchIdx, stateDone)

		base += uint32(len(chunk))
		batchIdx++
	}
	return matched, nil
}

// MatchRegex is MatchNames' regex counterpart.
func (o *Orchestrator) MatchRegex(ctx context.Context, backend gpu.Backend, prog *regex.Program, paths [][]byte) ([]int, error) {
	driver, ok := o.drivers[backend]
	if !ok {
		return nil, fmt.Errorf("orchestrator: no driver registered for backend %v", backend)
	}

	var matched []int
	base := uint32(0)
	batchIdx := 0
	for _, chunk := range chunkPaths(paths) {
		o.trace(backend, batchIdx, stateBuilding)
		batch, err := fsmatch.NewBatch(chunk, base)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: building batch %d: %w", batchIdx, err)
		}
		o.trace(backend, batchIdx, statePacked)
		o.trace(backend, batchIdx, stateEncoded)
		o.trace(backend, batchIdx, stateSubmitted)

		res, err := driver.MatchRegex(ctx, prog, batch)
		if err != nil {
			o.trace(backend, batchIdx, stateFailed)
			res, err = o.fallback.MatchRegex(ctx, prog, batch)
			if err != nil {
				return nil, fmt.Errorf("orchestrator: batch %d failed on both %v and fallback: %w", batchIdx, backend, err)
			}
		}
		o.trace(backend, batchIdx, stateComplete)
		o.trace(backend, batchIdx, stateReadback)

		for _, idx := range res.Compact(base) {
			matched = append(matched, int(idx))
		}
		o.trace(backend, batchIdx, stateDone)

		base += uint32(len(chunk))
		batchIdx++
	}
	return matched, nil
}

// Close releases every registered driver and the fallback driver.
func (o *Orchestrator) Close() error {
	var firstErr error
	for _, d := range o.drivers {
		if err := d.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := o.fallback.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// chunkPaths splits paths into groups respecting both MaxBatchPaths and
// MaxBatchBytes (§3).
func chunkPaths(paths [][]byte) [][][]byte {
	var chunks [][][]byte
	start := 0
	byteLen := 0
	for i, p := range paths {
		grow := len(p) + 1
		tooManyPaths := i-start >= fsmatch.MaxBatchPaths
		tooManyBytes := byteLen+grow > fsmatch.MaxBatchBytes
		if i > start && (tooManyPaths || tooManyBytes) {
			chunks = append(chunks, paths[start:i])
			start = i
			byteLen = 0
		}
		byteLen += grow
	}
	if start < len(paths) {
		chunks = append(chunks, paths[start:])
	}
	return chunks
}
