package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gofind/gofind/internal/fsmatch"
)

func TestMatchLiteral(t *testing.T) {
	assert.True(t, Match([]byte("main.go"), []byte("main.go"), 0))
	assert.False(t, Match([]byte("main.go"), []byte("main.rs"), 0))
}

func TestMatchStar(t *testing.T) {
	assert.True(t, Match([]byte("*.go"), []byte("main.go"), 0))
	assert.True(t, Match([]byte("*.go"), []byte(".go"), 0))
	assert.False(t, Match([]byte("*.go"), []byte("main.rs"), 0))
	assert.True(t, Match([]byte("a*b*c"), []byte("aXbYc"), 0))
	assert.False(t, Match([]byte("a*b*c"), []byte("aXbY"), 0))
}

func TestMatchQuestion(t *testing.T) {
	assert.True(t, Match([]byte("?ain.go"), []byte("main.go"), 0))
	assert.False(t, Match([]byte("?ain.go"), []byte("ain.go"), 0))
}

func TestMatchClass(t *testing.T) {
	assert.True(t, Match([]byte("[a-c]at"), []byte("bat"), 0))
	assert.False(t, Match([]byte("[a-c]at"), []byte("dat"), 0))
	assert.True(t, Match([]byte("[!a-c]at"), []byte("dat"), 0))
	assert.True(t, Match([]byte("[]ab]x"), []byte("]x"), 0), "leading ] in class is a literal member")
}

func TestMatchUnterminatedClassIsLiteral(t *testing.T) {
	assert.True(t, Match([]byte("[ab"), []byte("[ab"), 0))
}

func TestMatchCaseInsensitive(t *testing.T) {
	assert.False(t, Match([]byte("*.GO"), []byte("main.go"), 0))
	assert.True(t, Match([]byte("*.GO"), []byte("main.go"), fsmatch.CaseInsensitive))
}

func TestMatchPeriodRule(t *testing.T) {
	assert.False(t, Match([]byte("*"), []byte(".hidden"), fsmatch.Period))
	assert.True(t, Match([]byte(".*"), []byte(".hidden"), fsmatch.Period))
	assert.True(t, Match([]byte("*"), []byte(".hidden"), 0), "without Period, * matches a leading dot")
}

func TestMatchStarBacktracksPastFalseStart(t *testing.T) {
	// Classic pathological case for a naive single-checkpoint star: the
	// first place '*' could stop consuming isn't where the rest of the
	// pattern ends up matching, so the matcher must keep advancing the
	// checkpoint.
	assert.True(t, Match([]byte("*aaaa"), []byte("aaaaaaaaaaaaaaaab"+repeatA(4)), 0))
}

func repeatA(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
