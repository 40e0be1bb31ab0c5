// Package cpu provides the always-available Driver implementations: a
// scalar reference driver (internal/glob, internal/regex directly) and a
// SIMD-accelerated driver (internal/glob/simd hot paths). Both are pure
// Go, never fail Init, and serve as the fallback every GPU backend's
// failure path returns to (§4.6).
package cpu

import (
	"context"
	"runtime"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/glob"
	"github.com/gofind/gofind/internal/glob/simd"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/regex"
)

// Scalar is the reference glob/regex Driver: no vectorization, no
// concurrency. Every other backend's output must agree with it bit for
// bit (§8 equivalence property).
type Scalar struct{ basename func([]byte) []byte }

// NewScalar constructs a Scalar driver. It is always available.
func NewScalar() *Scalar { return &Scalar{basename: fsmatch.Basename} }

func (s *Scalar) Init(ctx context.Context) error { return nil }

func (s *Scalar) Capability() gpu.Capability {
	return gpu.Capability{Backend: gpu.BackendScalar, Available: true}
}

func (s *Scalar) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	res := fsmatch.Results{Records: make([]fsmatch.Result, batch.Len())}
	for i := 0; i < batch.Len(); i++ {
		name := batch.Path(i)
		if opts.Has(fsmatch.MatchPath) {
			// name already the full path.
		} else {
			name = s.basename(name)
		}
		ok := glob.Match(pattern, name, opts)
		res.Records[i] = fsmatch.Result{NameIdx: uint32(i), Matched: ok}
		if ok {
			res.MatchCount++
		}
	}
	return res, nil
}

func (s *Scalar) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	res := fsmatch.Results{Records: make([]fsmatch.Result, batch.Len())}
	for i := 0; i < batch.Len(); i++ {
		ok := regex.FullMatch(prog, batch.Path(i))
		res.Records[i] = fsmatch.Result{NameIdx: uint32(i), Matched: ok}
		if ok {
			res.MatchCount++
		}
	}
	return res, nil
}

func (s *Scalar) Close() error { return nil }

// SIMD is the vectorized-hot-path Driver: identical match semantics to
// Scalar, but basename lookup and pattern case-folding run through
// internal/glob/simd. It fans work out across GOMAXPROCS goroutines
// since, unlike a GPU dispatch, there is no batch-transfer cost to
// amortize by staying single-threaded.
type SIMD struct {
	workers int
}

// NewSIMD constructs a SIMD driver, defaulting its worker count to
// runtime.GOMAXPROCS(0).
func NewSIMD() *SIMD { return &SIMD{workers: runtime.GOMAXPROCS(0)} }

func (s *SIMD) Init(ctx context.Context) error { return nil }

func (s *SIMD) Capability() gpu.Capability {
	return gpu.Capability{Backend: gpu.BackendSIMD, Available: true}
}

func (s *SIMD) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	foldedPattern := pattern
	if opts.Has(fsmatch.CaseInsensitive) {
		foldedPattern = append([]byte(nil), pattern...)
		simd.FoldLower(foldedPattern)
	}

	res := fsmatch.Results{Records: make([]fsmatch.Result, batch.Len())}
	s.parallel(batch.Len(), func(i int) {
		name := batch.Path(i)
		if !opts.Has(fsmatch.MatchPath) {
			name = simd.Basename(name)
		}
		ok := glob.Match(foldedPattern, name, opts)
		res.Records[i] = fsmatch.Result{NameIdx: uint32(i), Matched: ok}
	})
	for _, r := range res.Records {
		if r.Matched {
			res.MatchCount++
		}
	}
	return res, nil
}

func (s *SIMD) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	res := fsmatch.Results{Records: make([]fsmatch.Result, batch.Len())}
	s.parallel(batch.Len(), func(i int) {
		ok := regex.FullMatch(prog, batch.Path(i))
		res.Records[i] = fsmatch.Result{NameIdx: uint32(i), Matched: ok}
	})
	for _, r := range res.Records {
		if r.Matched {
			res.MatchCount++
		}
	}
	return res, nil
}

func (s *SIMD) Close() error { return nil }

// parallel splits [0,n) into s.workers contiguous chunks and runs fn over
// each index concurrently, waiting for every chunk to finish.
func (s *SIMD) parallel(n int, fn func(i int)) {
	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if n < workers {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				fn(i)
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
}
