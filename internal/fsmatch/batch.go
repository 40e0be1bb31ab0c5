package fsmatch

import "fmt"

// MaxBatchPaths is the largest number of paths a single GPU dispatch
// processes. Larger inputs are split by the orchestrator.
const MaxBatchPaths = 65536

// MaxBatchBytes is the largest packed names_data size for one dispatch.
const MaxBatchBytes = 64 * 1024 * 1024

// Batch is the flattened, GPU-ready representation of a set of paths:
// the concatenation of every path's bytes (names_data) plus parallel
// offset/length arrays. No delimiter separates entries in names_data;
// offsets[i]+lengths[i] never exceeds len(names_data).
type Batch struct {
	NamesData []byte
	Offsets   []uint32
	Lengths   []uint32

	// Base is the global index of Offsets[0]/Lengths[0] within the full
	// walker output, used to translate a batch-local name_idx into a
	// global index once batches are concatenated (§4.6).
	Base uint32
}

// NewBatch packs paths into a Batch. It does not sort or deduplicate;
// paths are opaque byte sequences and any byte value is permitted.
func NewBatch(paths [][]byte, base uint32) (*Batch, error) {
	if len(paths) > MaxBatchPaths {
		return nil, fmt.Errorf("fsmatch: batch of %d paths exceeds max %d", len(paths), MaxBatchPaths)
	}

	total := 0
	for _, p := range paths {
		total += len(p)
	}
	if total > MaxBatchBytes {
		return nil, fmt.Errorf("fsmatch: packed batch of %d bytes exceeds max %d", total, MaxBatchBytes)
	}

	b := &Batch{
		NamesData: make([]byte, 0, total),
		Offsets:   make([]uint32, len(paths)),
		Lengths:   make([]uint32, len(paths)),
		Base:      base,
	}
	for i, p := range paths {
		b.Offsets[i] = uint32(len(b.NamesData))
		b.Lengths[i] = uint32(len(p))
		b.NamesData = append(b.NamesData, p...)
	}
	return b, nil
}

// Len returns the number of paths packed into the batch.
func (b *Batch) Len() int { return len(b.Offsets) }

// Path returns the byte slice for path i. It aliases NamesData; callers
// must not retain it past the batch's lifetime if NamesData is reused.
func (b *Batch) Path(i int) []byte {
	off, ln := b.Offsets[i], b.Lengths[i]
	return b.NamesData[off : off+ln]
}

// Basename returns the final '/'-separated component of path i.
func (b *Batch) Basename(i int) []byte {
	return Basename(b.Path(i))
}

// Basename returns the final '/'-separated component of path. The scalar
// implementation here is what the SIMD package (internal/glob/simd)
// accelerates for large inputs; both must agree on every input.
func Basename(path []byte) []byte {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// Result is a per-path match record. A batch produces one Result for
// every input index, whether or not it matched, plus the dense MatchCount
// of entries where Matched is true (§3, §9 write-all + host-compact).
type Result struct {
	NameIdx uint32
	Matched bool
}

// Results is the output of one dispatch: a Result per input path plus the
// atomically-accumulated total match count.
type Results struct {
	Records    []Result
	MatchCount uint32
}

// Compact returns the global indices (Base + NameIdx) of matching records,
// in the original input order. This is the host-side compaction mentioned
// in §9: the kernel always writes one record per input index, and the host
// collapses that into a dense index list.
func (r Results) Compact(base uint32) []uint32 {
	out := make([]uint32, 0, r.MatchCount)
	for _, rec := range r.Records {
		if rec.Matched {
			out = append(out, base+rec.NameIdx)
		}
	}
	return out
}
