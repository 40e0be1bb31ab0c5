// Package fsmatch holds the data model shared by every matching backend:
// the match-options bitfield and the flattened path batch that scalar,
// SIMD, and GPU dispatch all operate on.
package fsmatch

// Options is a bitfield of the three orthogonal match options from the
// data model. All three backends (scalar, SIMD, GPU) must interpret these
// bits identically.
type Options uint32

const (
	// CaseInsensitive folds ASCII letters (A-Z -> a-z) before comparing.
	// Bytes >= 0x80 always compare literally.
	CaseInsensitive Options = 1 << iota

	// MatchPath matches the pattern against the full path instead of only
	// the basename (the final '/'-separated component).
	MatchPath

	// Period requires a leading '.' in the segment being matched to be
	// matched by an explicit '.' in the pattern, never by '*', '?', or a
	// character class (POSIX fnmatch's FNM_PERIOD).
	Period
)

// Has reports whether all bits in mask are set.
func (o Options) Has(mask Options) bool {
	return o&mask == mask
}
