package glob

import "github.com/gofind/gofind/internal/fsmatch"

// classResult is the outcome of attempting to consume a character class
// starting at pattern[pi] ('[').
type classResult struct {
	matched  bool // the class matched text[ni]
	consumed int  // bytes of pattern consumed (0 means: not a valid class, treat '[' literally)
}

// matchClass evaluates the character class starting at pattern[pi] ('[')
// against the single byte text[ni]. A class opens with '[', optionally
// '!' or '^' to negate, then members terminated by ']'. A literal ']' is
// only a member if it is the first one (after any negation sign). An
// unclosed class yields consumed=0 and the caller falls back to treating
// '[' as a literal byte.
func matchClass(pattern []byte, pi int, c byte, opts fsmatch.Options) classResult {
	i := pi + 1
	negate := false
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		negate = true
		i++
	}

	firstMemberIdx := i
	found := false

	for i < len(pattern) {
		if pattern[i] == ']' && i != firstMemberIdx {
			// End of class.
			end := i + 1
			return classResult{matched: found != negate, consumed: end - pi}
		}

		// Range a-z: three bytes, dash not at class boundary.
		if i+2 < len(pattern) && pattern[i+1] == '-' && pattern[i+2] != ']' {
			lo, hi := pattern[i], pattern[i+2]
			if inRange(lo, hi, c, opts) {
				found = true
			}
			i += 3
			continue
		}

		if charsEqual(pattern[i], c, opts) {
			found = true
		}
		i++
	}

	// Unterminated class.
	return classResult{matched: false, consumed: 0}
}

func inRange(lo, hi, c byte, opts fsmatch.Options) bool {
	if opts.Has(fsmatch.CaseInsensitive) {
		lo, hi, c = foldByte(lo), foldByte(hi), foldByte(c)
	}
	return lo <= c && c <= hi
}

func charsEqual(a, b byte, opts fsmatch.Options) bool {
	if opts.Has(fsmatch.CaseInsensitive) {
		return foldByte(a) == foldByte(b)
	}
	return a == b
}

// foldByte performs ASCII-only case folding: A-Z -> a-z. Bytes >= 0x80
// pass through unchanged.
func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
