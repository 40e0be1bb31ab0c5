// Package prefilter implements the literal-run gate from §4.7: before a
// name is handed to the glob or regex matcher, a cheap Aho-Corasick scan
// over the pattern's extracted literal runs rejects names that cannot
// possibly match, without ever changing the final match/no-match verdict.
//
// Grounded on the teacher's pkg/prefilter, which gates secret-detection
// rules on Aho-Corasick keyword hits before running the expensive regex
// against file content; here the "rules" are glob/regex literal runs and
// the "content" is a candidate path or basename.
package prefilter

import "github.com/cloudflare/ahocorasick"

// Prefilter rejects names that cannot contain any of a pattern's literal
// runs. A Prefilter with no extracted literals (e.g. "*" or "?????")
// always passes every name through to the real matcher.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	literals []string
}

// New builds a Prefilter from the literal runs extracted from a compiled
// pattern. Passing a nil or empty slice yields a Prefilter that always
// says MayMatch.
func New(literals []string) *Prefilter {
	pf := &Prefilter{literals: literals}
	if len(literals) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(literals)
	}
	return pf
}

// MayMatch reports whether name could possibly satisfy the pattern this
// Prefilter was built from. A false result is a hard rejection — the
// real matcher is guaranteed to also reject name. A true result is
// advisory only: the real matcher still makes the final call.
func (pf *Prefilter) MayMatch(name []byte) bool {
	if pf.matcher == nil {
		return true
	}
	return len(pf.matcher.Match(name)) > 0
}

// ExtractGlobLiterals pulls the maximal literal byte runs out of a glob
// pattern, splitting on '*' and '?' and skipping each '[...]' class
// (§4.1 wildcard bytes). A run shorter than minLiteralLen is dropped:
// short runs filter too few candidates to be worth the Aho-Corasick
// overhead.
func ExtractGlobLiterals(pattern []byte, minLiteralLen int) []string {
	var out []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minLiteralLen {
			out = append(out, string(pattern[start:end]))
		}
		start = -1
	}
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?':
			flush(i)
		case '[':
			// A class's bytes are alternatives, not required literals: skip
			// to its closing ']' (a leading ']' is a member).
			flush(i)
			j := i + 1
			if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			i = j
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(pattern))
	return out
}

// regexMeta is the set of bytes that end a literal run in the restricted
// regex grammar §4.2 supports.
const regexMeta = ".*+?()|[^$\\"

// ExtractRegexLiteral returns the single longest literal run in a raw
// regex source string, or "" if the pattern has no run at least
// minLiteralLen long. Unlike glob patterns, a regex is not reliably
// decomposable into several independent required substrings — splitting
// on '|' would turn a required run into an optional one — so only one,
// the longest, is extracted, mirroring the "longestLiteral" substring
// optimization used to prefilter regex search in the example corpus.
func ExtractRegexLiteral(src string, minLiteralLen int) string {
	best, bestLen := "", 0
	start := -1
	flush := func(end int) {
		if start >= 0 {
			if n := end - start; n > bestLen {
				best, bestLen = src[start:end], n
			}
		}
		start = -1
	}
	for i := 0; i < len(src); i++ {
		if indexByte(regexMeta, src[i]) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(src))
	if bestLen < minLiteralLen {
		return ""
	}
	return best
}

func indexByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
