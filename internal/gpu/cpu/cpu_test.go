package cpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/regex"
)

func batchOf(t *testing.T, paths ...string) *fsmatch.Batch {
	t.Helper()
	raw := make([][]byte, len(paths))
	for i, p := range paths {
		raw[i] = []byte(p)
	}
	b, err := fsmatch.NewBatch(raw, 0)
	require.NoError(t, err)
	return b
}

func TestScalarAndSIMDAgreeOnMatchNames(t *testing.T) {
	batch := batchOf(t, "src/main.go", "src/main_test.go", "README.md", "docs/MAIN.GO", ".hidden.go", "main.go")

	scalar, simdDriver := NewScalar(), NewSIMD()
	require.NoError(t, scalar.Init(context.Background()))
	require.NoError(t, simdDriver.Init(context.Background()))

	for _, tc := range []struct {
		pattern string
		opts    fsmatch.Options
	}{
		{"*.go", 0},
		{"*.GO", fsmatch.CaseInsensitive},
		{"main*", fsmatch.MatchPath},
		{"*_test.go", 0},
	} {
		scalarRes, err := scalar.MatchNames(context.Background(), []byte(tc.pattern), tc.opts, batch)
		require.NoError(t, err)
		simdRes, err := simdDriver.MatchNames(context.Background(), []byte(tc.pattern), tc.opts, batch)
		require.NoError(t, err)

		assert.Equal(t, scalarRes.MatchCount, simdRes.MatchCount, "pattern %q opts %v", tc.pattern, tc.opts)
		for i := range scalarRes.Records {
			assert.Equal(t, scalarRes.Records[i].Matched, simdRes.Records[i].Matched,
				"pattern %q opts %v index %d (%s)", tc.pattern, tc.opts, i, batch.Path(i))
		}
	}
}

func TestScalarAndSIMDAgreeOnMatchRegex(t *testing.T) {
	batch := batchOf(t, "src/main.go", "src/main_test.go", "README.md")
	prog, err := regex.Compile(`.*\.go`, false)
	require.NoError(t, err)

	scalar, simdDriver := NewScalar(), NewSIMD()
	require.NoError(t, scalar.Init(context.Background()))
	require.NoError(t, simdDriver.Init(context.Background()))

	scalarRes, err := scalar.MatchRegex(context.Background(), prog, batch)
	require.NoError(t, err)
	simdRes, err := simdDriver.MatchRegex(context.Background(), prog, batch)
	require.NoError(t, err)

	assert.Equal(t, scalarRes.MatchCount, simdRes.MatchCount)
	for i := range scalarRes.Records {
		assert.Equal(t, scalarRes.Records[i].Matched, simdRes.Records[i].Matched)
	}
}

func TestScalarAndSIMDCapabilityReportAvailable(t *testing.T) {
	assert.True(t, NewScalar().Capability().Available)
	assert.True(t, NewSIMD().Capability().Available)
}
