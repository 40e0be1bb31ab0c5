package simd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gofind/gofind/internal/fsmatch"
)

func TestLastIndexSlashMatchesScalar(t *testing.T) {
	cases := []string{
		"",
		"nodir",
		"/",
		"a/b",
		"/usr/local/bin/gofind",
		"no/slash/at/all/but/longer/than/eight/bytes/total/path/here",
		"exactly8/",
		"trailingslash/",
	}
	for _, c := range cases {
		path := []byte(c)
		assert.Equal(t, lastIndexSlashScalar(path), LastIndexSlash(path), "mismatch for %q", c)
	}
}

func TestBasenameMatchesFsmatch(t *testing.T) {
	cases := []string{"a/b/c", "nodir", "/", "trailing/"}
	for _, c := range cases {
		assert.Equal(t, string(fsmatch.Basename([]byte(c))), string(Basename([]byte(c))), "mismatch for %q", c)
	}
}

func TestFoldLowerMatchesScalarFold(t *testing.T) {
	cases := []string{
		"",
		"already-lower",
		"ALLCAPS",
		"MiXeD-Case_123",
		"LongerThanEightBytesABCDEFG",
		"Tail7", // length not a multiple of 8
	}
	for _, c := range cases {
		got := []byte(c)
		FoldLower(got)
		assert.Equal(t, scalarFold(c), string(got), "mismatch for %q", c)
	}
}

func lastIndexSlashScalar(path []byte) int {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return i
		}
	}
	return -1
}

func scalarFold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
