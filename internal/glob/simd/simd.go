// Package simd provides vectorized hot paths for the glob matcher (§4.1):
// locating the last '/' in a path (basename lookup) and pre-folding a
// pattern to lowercase, both processed in fixed-width strides gated by
// CPU feature detection. Portable Go has no SIMD intrinsics, so these
// strides are expressed as branchless word-at-a-time arithmetic over
// uint64s read with golang.org/x/sys/cpu feature gating — the same
// "process a machine word at a time instead of per-byte" approximation
// the example corpus's NFA engines use for their sparse byte-range scans,
// rather than true vector instructions.
//
// The matcher's inner '*'-backtracking loop is not vectorized: its data
// dependency on dynamic checkpoints defeats straight-line SIMD, exactly
// as documented in §4.1. Only these two ancillary scans are accelerated.
package simd

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// strideWords is the number of 8-byte words gated together by one
// reduce-OR test, chosen from detected CPU features to approximate the
// 32-byte (AVX2) / 16-byte (NEON) strides §4.1 documents. Hardware
// without either falls back to a single-word (8-byte) stride.
var strideWords = detectStrideWords()

func detectStrideWords() int {
	switch {
	case cpu.X86.HasAVX2:
		return 4 // 32 bytes
	case cpu.ARM64.HasASIMD:
		return 2 // 16 bytes
	default:
		return 1 // 8 bytes
	}
}

// hasByteBroadcast reports, for the 8-byte word w, whether any of its
// bytes equal target. This is the classic SWAR ("SIMD within a register")
// broadcast-compare-and-reduce-OR trick: XOR w with a broadcast target
// byte (a matching lane becomes 0x00), subtract 0x01 from every lane, AND
// with the complement of the XOR result, AND with the high-bit mask — a
// nonzero result means some lane was zero, i.e. matched.
func hasByteBroadcast(w uint64, target byte) bool {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080
	bcast := lo * uint64(target)
	x := w ^ bcast
	return (x-lo)&^x&hi != 0
}

// LastIndexSlash locates the last '/' in path, returning -1 if absent. It
// scans strideWords-wide groups of 8-byte words back to front: a group is
// first tested with a reduce-OR broadcast compare across all its words,
// and only a group that contains a slash is scanned byte-by-byte from its
// end to pin down the exact, rightmost position.
func LastIndexSlash(path []byte) int {
	n := len(path)
	tail := n % 8

	// Unaligned tail bytes first, scanning from the true end backwards.
	for j := n - 1; j >= n-tail; j-- {
		if path[j] == '/' {
			return j
		}
	}

	groupBytes := 8 * strideWords
	aligned := n - tail
	for groupEnd := aligned; groupEnd > 0; {
		groupStart := groupEnd - groupBytes
		if groupStart < 0 {
			groupStart = 0
		}

		anyHit := false
		for start := groupStart; start < groupEnd; start += 8 {
			w := binary.NativeEndian.Uint64(path[start : start+8])
			if hasByteBroadcast(w, '/') {
				anyHit = true
				break
			}
		}
		if anyHit {
			for j := groupEnd - 1; j >= groupStart; j-- {
				if path[j] == '/' {
					return j
				}
			}
		}
		groupEnd = groupStart
	}
	return -1
}

// Basename returns the final '/'-separated component of path using the
// vectorized slash scan above. It must return byte-identical results to
// fsmatch.Basename for every input.
func Basename(path []byte) []byte {
	idx := LastIndexSlash(path)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// upperMask produces a word where each byte lane is 0xFF if the
// corresponding lane of w holds an ASCII upper-case letter, 0x00
// otherwise: the "(c >= 'A') & (c <= 'Z')" predicate evaluated for all
// eight lanes of one machine word and packed back into a single word, so
// the caller's add-32 step below touches the whole word in one op instead
// of branching per byte.
func upperMask(w uint64) uint64 {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080
	// With each lane's high bit cleared, adding (0x80-'A') sets the lane's
	// high bit iff the low 7 bits are >= 'A', and adding (0x80-'Z'-1) iff
	// they are > 'Z'; no lane can carry into the next. Lanes >= 0x80 are
	// excluded by &^ w.
	h := w &^ hi
	geA := h + lo*(0x80-'A')
	gtZ := h + lo*(0x80-'Z'-1)
	return ((geA &^ gtZ &^ w & hi) >> 7) * 0xFF
}

// FoldLower lowercases pattern in place using a branchless per-lane mask
// applied one machine word at a time, falling back to a scalar byte loop
// for the remainder shorter than 8 bytes. Only ASCII A-Z fold; bytes
// >= 0x80 are left untouched, matching the scalar glob matcher's
// case-folding rule exactly.
func FoldLower(pattern []byte) {
	n := len(pattern)
	i := 0
	for ; i+8 <= n; i += 8 {
		w := binary.NativeEndian.Uint64(pattern[i : i+8])
		mask := upperMask(w)
		w += mask & 0x2020202020202020 // add 32 to upper-case lanes only
		binary.NativeEndian.PutUint64(pattern[i:i+8], w)
	}
	for ; i < n; i++ {
		if pattern[i] >= 'A' && pattern[i] <= 'Z' {
			pattern[i] += 32
		}
	}
}
