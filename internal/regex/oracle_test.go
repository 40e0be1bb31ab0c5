package regex

import (
	"testing"

	"github.com/dlclark/regexp2"
)

// oracleCases pairs a restricted-grammar pattern (§4.2: literals, '.',
// '[...]', '^'/'$', '\b'/'\B', '(...)', '|', '*'/'+'/'?') with inputs to
// check it against. Every case must be expressible in both this package's
// grammar and in regexp2's, so the only variable under test is whether
// the two engines agree on full-string matching.
var oracleCases = []struct {
	pattern string
	inputs  []string
}{
	{`foo.txt`, []string{"foo.txt", "foo.txtx", "xfoo.txt", "fooAtxt"}},
	{`ab*c`, []string{"ac", "abc", "abbbbc", "abd", ""}},
	{`ab+c`, []string{"ac", "abc", "abbc"}},
	{`colou?r`, []string{"color", "colour", "colouur"}},
	{`cat|dog|bird`, []string{"cat", "dog", "bird", "catdog", "ca"}},
	{`[a-z]+[0-9]`, []string{"report5", "Report5", "abc", "a1b2"}},
	{`[!0-9]+`, []string{"abc", "abc1", "9"}},
	{`(foo|bar)baz`, []string{"foobaz", "barbaz", "bazfoo"}},
	{`.*\btest\b.*`, []string{"a test case", "a testing case", "test", "atestb"}},
	{`^abc$`, []string{"abc", "abcd", "xabc"}},
	{`a.c`, []string{"abc", "ac", "axc"}},
}

// TestOracleAgreesWithRegexp2 cross-checks FullMatch against
// dlclark/regexp2 (a backtracking engine with its own independent
// implementation) as an oracle for the shared subset of grammar both
// engines support. '!' is translated to '^' for regexp2's POSIX-style
// negated classes since regexp2 does not accept '!' there.
func TestOracleAgreesWithRegexp2(t *testing.T) {
	for _, tc := range oracleCases {
		prog, err := Compile(tc.pattern, false)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.pattern, err)
		}

		oraclePattern := "^(?:" + translateForRegexp2(tc.pattern) + ")$"
		re, err := regexp2.Compile(oraclePattern, 0)
		if err != nil {
			t.Fatalf("regexp2.Compile(%q): %v", oraclePattern, err)
		}

		for _, in := range tc.inputs {
			got := FullMatch(prog, []byte(in))
			want, err := re.MatchString(in)
			if err != nil {
				t.Fatalf("regexp2 MatchString(%q): %v", in, err)
			}
			if got != want {
				t.Errorf("pattern %q, input %q: FullMatch=%v regexp2=%v", tc.pattern, in, got, want)
			}
		}
	}
}

// translateForRegexp2 rewrites the one grammar divergence between this
// package and regexp2: a negated class spelled "[!...]" instead of the
// standard "[^...]".
func translateForRegexp2(pattern string) string {
	out := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '[' && i+1 < len(pattern) && pattern[i+1] == '!' {
			out = append(out, '[', '^')
			i++
			continue
		}
		out = append(out, pattern[i])
	}
	return string(out)
}
