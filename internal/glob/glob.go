// Package glob implements the portable fnmatch-like glob matcher specified
// in §4.1. Match is the reference scalar implementation; it must produce
// results bit-identical to the SIMD-accelerated variant in
// internal/glob/simd and to every GPU kernel (§8, equivalence property).
package glob

import "github.com/gofind/gofind/internal/fsmatch"

// MaxPatternLen is the largest accepted glob pattern, in bytes (§3).
const MaxPatternLen = 1024

// Match reports whether text matches pattern under opts, using the
// classic two-cursor backtracking algorithm with a single '*' checkpoint
// described in §4.1. Pattern is a literal/`*`/`?`/`[...]` glob; text is an
// opaque byte sequence (a path or basename, depending on MatchPath).
func Match(pattern, text []byte, opts fsmatch.Options) bool {
	// Leading-period rule: a leading '.' in the segment being matched
	// must be matched by an explicit '.' at the very start of the
	// pattern, never by '*', '?', or a character class.
	if opts.Has(fsmatch.Period) && len(text) > 0 && text[0] == '.' {
		if len(pattern) == 0 || pattern[0] != '.' {
			return false
		}
	}

	var (
		pi, ni         int
		starPi, starNi int
		hasStar        bool
	)

	for ni < len(text) {
		matched := false
		if pi < len(pattern) {
			switch pattern[pi] {
			case '*':
				starPi, starNi, hasStar = pi, ni, true
				pi++
				continue
			case '?':
				pi++
				ni++
				matched = true
			case '[':
				cls := matchClass(pattern, pi, text[ni], opts)
				if cls.consumed == 0 {
					// Invalid/unterminated class: '[' is a literal byte.
					if charsEqual(pattern[pi], text[ni], opts) {
						pi++
						ni++
						matched = true
					}
				} else if cls.matched {
					pi += cls.consumed
					ni++
					matched = true
				}
			default:
				if charsEqual(pattern[pi], text[ni], opts) {
					pi++
					ni++
					matched = true
				}
			}
		}
		if matched {
			continue
		}

		if hasStar {
			pi = starPi + 1
			starNi++
			ni = starNi
			continue
		}
		return false
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
