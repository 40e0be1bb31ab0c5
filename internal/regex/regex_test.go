package regex

import "testing"

func mustCompile(t *testing.T, pattern string, fold bool) *Program {
	t.Helper()
	p, err := Compile(pattern, fold)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return p
}

func TestFullMatchLiteral(t *testing.T) {
	p := mustCompile(t, "foo.txt", false)
	if !FullMatch(p, []byte("foo.txt")) {
		t.Fatal("expected literal match")
	}
	if FullMatch(p, []byte("foo.txtx")) {
		t.Fatal("expected no match on extra suffix — -regex anchors both ends")
	}
	if FullMatch(p, []byte("xfoo.txt")) {
		t.Fatal("expected no match on extra prefix — -regex anchors both ends")
	}
}

func TestFullMatchDotIsAny(t *testing.T) {
	p := mustCompile(t, "a.c", false)
	if !FullMatch(p, []byte("abc")) {
		t.Fatal("'.' should match any byte")
	}
	if FullMatch(p, []byte("ac")) {
		t.Fatal("'.' must consume exactly one byte")
	}
}

func TestFullMatchStarPlusQuest(t *testing.T) {
	p := mustCompile(t, "ab*c", false)
	for _, s := range []string{"ac", "abc", "abbbbc"} {
		if !FullMatch(p, []byte(s)) {
			t.Errorf("expected %q to match ab*c", s)
		}
	}
	if FullMatch(p, []byte("abd")) {
		t.Fatal("abd should not match ab*c")
	}

	plus := mustCompile(t, "ab+c", false)
	if FullMatch(plus, []byte("ac")) {
		t.Fatal("ab+c requires at least one b")
	}
	if !FullMatch(plus, []byte("abc")) {
		t.Fatal("expected abc to match ab+c")
	}

	quest := mustCompile(t, "colou?r", false)
	if !FullMatch(quest, []byte("color")) || !FullMatch(quest, []byte("colour")) {
		t.Fatal("expected both color and colour to match colou?r")
	}
}

func TestFullMatchAlternation(t *testing.T) {
	p := mustCompile(t, "cat|dog|bird", false)
	for _, s := range []string{"cat", "dog", "bird"} {
		if !FullMatch(p, []byte(s)) {
			t.Errorf("expected %q to match", s)
		}
	}
	if FullMatch(p, []byte("catdog")) {
		t.Fatal("catdog should not match cat|dog|bird")
	}
}

func TestFullMatchCharClass(t *testing.T) {
	p := mustCompile(t, "[a-z]+[0-9]", false)
	if !FullMatch(p, []byte("report5")) {
		t.Fatal("expected report5 to match")
	}
	if FullMatch(p, []byte("Report5")) {
		t.Fatal("capital R should not match [a-z] case-sensitively")
	}

	neg := mustCompile(t, "[!0-9]+", false)
	if !FullMatch(neg, []byte("abc")) {
		t.Fatal("expected abc to match negated digit class")
	}
	if FullMatch(neg, []byte("abc1")) {
		t.Fatal("digit should fail negated class")
	}
}

func TestFullMatchCaseInsensitive(t *testing.T) {
	p := mustCompile(t, "readme\\.md", true)
	if !FullMatch(p, []byte("README.MD")) {
		t.Fatal("expected case-insensitive literal match")
	}

	class := mustCompile(t, "[a-z]+", true)
	if !FullMatch(class, []byte("ABCxyz")) {
		t.Fatal("expected case-folded class to match mixed case")
	}
}

func TestFullMatchGroupsDoNotAffectSuccess(t *testing.T) {
	p := mustCompile(t, "(foo|bar)baz", false)
	if !FullMatch(p, []byte("foobaz")) || !FullMatch(p, []byte("barbaz")) {
		t.Fatal("expected both alternatives to match through group")
	}
}

func TestFullMatchWordBoundary(t *testing.T) {
	p := mustCompile(t, ".*\\btest\\b.*", false)
	if !FullMatch(p, []byte("a test case")) {
		t.Fatal("expected word-bounded 'test' to match")
	}
	if FullMatch(p, []byte("a testing case")) {
		t.Fatal("'testing' should not satisfy a trailing \\b after test")
	}
}

func TestMaxStatesRejected(t *testing.T) {
	// A pattern whose fully expanded NFA exceeds MaxStates must fail to
	// compile rather than silently truncating.
	pattern := ""
	for i := 0; i < 200; i++ {
		pattern += "a?"
	}
	if _, err := Compile(pattern, false); err == nil {
		t.Fatal("expected compile error for oversized pattern")
	}
}
