package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithNoLiteralsAlwaysMayMatch(t *testing.T) {
	pf := New(nil)
	assert.True(t, pf.MayMatch([]byte("anything at all")))
}

func TestMayMatchRejectsNamesMissingEveryLiteral(t *testing.T) {
	pf := New([]string{"config", "secret"})
	assert.True(t, pf.MayMatch([]byte("app-config.yaml")))
	assert.True(t, pf.MayMatch([]byte("my-secret-file")))
	assert.False(t, pf.MayMatch([]byte("readme.md")))
}

func TestExtractGlobLiterals(t *testing.T) {
	got := ExtractGlobLiterals([]byte("config*backup"), 3)
	require.Len(t, got, 2)
	assert.Equal(t, "config", got[0])
	assert.Equal(t, "backup", got[1])
}

func TestExtractGlobLiteralsDropsShortRuns(t *testing.T) {
	got := ExtractGlobLiterals([]byte("a*bb*ccc"), 3)
	assert.Equal(t, []string{"ccc"}, got)
}

func TestExtractGlobLiteralsAllWildcards(t *testing.T) {
	assert.Empty(t, ExtractGlobLiterals([]byte("*?*?*"), 1))
}

func TestExtractRegexLiteralPicksLongestRun(t *testing.T) {
	got := ExtractRegexLiteral(`foo.*configuration[0-9]+`, 3)
	assert.Equal(t, "configuration", got)
}

func TestExtractRegexLiteralBelowMinLenReturnsEmpty(t *testing.T) {
	got := ExtractRegexLiteral(`a.b.c`, 3)
	assert.Equal(t, "", got)
}
