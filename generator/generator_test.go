package generator_test

import (
	"context"
	"testing"

	"github.com/forestrie/go-markerbook/codebook"
	"github.com/forestrie/go-markerbook/codebooktesting"
	"github.com/forestrie/go-markerbook/codeword"
	"github.com/forestrie/go-markerbook/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, seed uint64) codebooktesting.TestContext {
	return codebooktesting.NewTestContext(t, codebooktesting.TestConfig{
		Seed:            seed,
		TestLabelPrefix: "generator",
	})
}

func newGenerator(t *testing.T, tc codebooktesting.TestContext, markerSize int, opts ...generator.Option) *generator.Generator {
	g, err := generator.New(markerSize, tc.Log, tc.Rand, opts...)
	require.NoError(t, err)
	return g
}

// requireSeparated checks the acceptance invariants of a generated codebook.
func requireSeparated(t *testing.T, res generator.Result) {
	t.Helper()
	rows := res.Codebook.Codewords()
	require.Len(t, res.AcceptedTau, len(rows))

	for i, row := range rows {
		if i > 0 {
			require.LessOrEqual(t, res.AcceptedTau[i], res.AcceptedTau[i-1], "tau must not increase")
		}
		require.GreaterOrEqual(t, codeword.SelfDistance(row), res.AcceptedTau[i], "row %d self distance", i)
		for j := 0; j < i; j++ {
			d, _ := codeword.MinDistance(row, rows[j], true)
			require.GreaterOrEqual(t, d, res.AcceptedTau[i], "rows %d and %d", j, i)
			require.GreaterOrEqual(t, d, res.Tau)
		}
	}
	require.Equal(t, res.AcceptedTau[len(rows)-1], res.Tau)
	require.Equal(t, generator.MaxCorrectionBits(res.Tau), res.Codebook.MaxCorrectionBits())
	require.GreaterOrEqual(t, res.Codebook.MinSeparation(), res.Tau)
}

func TestTheoreticalSeparation(t *testing.T) {
	tests := []struct {
		markerSize int
		want       int
	}{
		{1, 0},
		{2, 2},
		{3, 4},
		{4, 10},
		{5, 16},
		{6, 24},
		{7, 32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, generator.TheoreticalSeparation(tt.markerSize), "marker size %d", tt.markerSize)
	}
}

func TestMaxCorrectionBits(t *testing.T) {
	assert.Equal(t, 0, generator.MaxCorrectionBits(0))
	assert.Equal(t, 0, generator.MaxCorrectionBits(1))
	assert.Equal(t, 0, generator.MaxCorrectionBits(2))
	assert.Equal(t, 1, generator.MaxCorrectionBits(3))
	assert.Equal(t, 7, generator.MaxCorrectionBits(16))
}

func TestGenerateSeparation(t *testing.T) {
	tc := newTestContext(t, 42)
	g := newGenerator(t, tc, 5, generator.WithPatience(500))

	res, err := g.Generate(context.Background(), 8, nil)
	require.NoError(t, err)
	require.Equal(t, 8, res.Codebook.Len())
	require.Equal(t, 5, res.Codebook.MarkerSize())
	require.LessOrEqual(t, res.Tau, generator.TheoreticalSeparation(5))
	require.GreaterOrEqual(t, res.Tau, 1)
	require.GreaterOrEqual(t, res.Iterations, 8)
	requireSeparated(t, res)

	// Separation guarantees every marker identifies as itself, in every
	// orientation, at the full error budget.
	for id := 0; id < res.Codebook.Len(); id++ {
		bits, err := res.Codebook.Bits(id)
		require.NoError(t, err)
		for k := 0; k < codeword.Rotations; k++ {
			match, err := res.Codebook.Identify(bits, 1.0)
			require.NoError(t, err)
			require.Equal(t, codebook.Match{Found: true, ID: id, Rotation: k}, match)
			bits = bits.Rotate()
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := newTestContext(t, 7)
	b := newTestContext(t, 7)

	resA, err := newGenerator(t, a, 6, generator.WithPatience(200)).Generate(context.Background(), 5, nil)
	require.NoError(t, err)
	resB, err := newGenerator(t, b, 6, generator.WithPatience(200)).Generate(context.Background(), 5, nil)
	require.NoError(t, err)

	require.Equal(t, resA.Codebook.Bytes(), resB.Codebook.Bytes())
	require.Equal(t, resA.AcceptedTau, resB.AcceptedTau)
	require.Equal(t, resA.Iterations, resB.Iterations)
}

func TestGenerateExtendsBase(t *testing.T) {
	tc := newTestContext(t, 2024)

	// Two markers generated at the highest separation reachable.
	seed, err := newGenerator(t, tc, 5).Generate(context.Background(), 2, nil)
	require.NoError(t, err)
	require.Equal(t, 2, seed.Codebook.Len())
	base := seed.Codebook
	baseTau := base.MinSeparation()

	res, err := newGenerator(t, tc, 5).Generate(context.Background(), 4, base)
	require.NoError(t, err)
	require.Equal(t, 4, res.Codebook.Len())
	require.LessOrEqual(t, res.Tau, baseTau)
	require.Equal(t, baseTau, res.AcceptedTau[0])
	require.Equal(t, baseTau, res.AcceptedTau[1])
	requireSeparated(t, res)

	// The base rows keep their ids.
	for id := 0; id < base.Len(); id++ {
		want, err := base.Codeword(id)
		require.NoError(t, err)
		got, err := res.Codebook.Codeword(id)
		require.NoError(t, err)
		require.True(t, want.Equal(got))
	}

	bits, err := res.Codebook.Bits(2)
	require.NoError(t, err)
	match, err := res.Codebook.Identify(bits, 1.0)
	require.NoError(t, err)
	require.Equal(t, codebook.Match{Found: true, ID: 2, Rotation: 0}, match)
}

func TestGenerateBaseAlreadyLargeEnough(t *testing.T) {
	tc := newTestContext(t, 5)
	seed, err := newGenerator(t, tc, 4, generator.WithPatience(100)).Generate(context.Background(), 3, nil)
	require.NoError(t, err)

	res, err := newGenerator(t, tc, 4).Generate(context.Background(), 2, seed.Codebook)
	require.NoError(t, err)
	require.Equal(t, 3, res.Codebook.Len())
	require.Equal(t, 0, res.Iterations)
	require.Equal(t, seed.Codebook.Bytes(), res.Codebook.Bytes())
	require.Equal(t, seed.Codebook.MinSeparation(), res.Tau)
}

func TestGenerateCollapsesOnTinyMarkers(t *testing.T) {
	tc := newTestContext(t, 11)

	// A single cell can not be separated from its own rotations.
	g := newGenerator(t, tc, 1)
	_, err := g.Generate(context.Background(), 2, nil)
	require.ErrorIs(t, err, generator.ErrSeparationCollapsed)

	// 2x2 markers have only three rotation classes with a non zero self
	// distance, so a fourth marker can never be separated.
	g = newGenerator(t, tc, 2, generator.WithPatience(50))
	_, err = g.Generate(context.Background(), 4, nil)
	require.ErrorIs(t, err, generator.ErrSeparationCollapsed)

	g = newGenerator(t, tc, 5, generator.WithMinSeparation(100))
	_, err = g.Generate(context.Background(), 1, nil)
	require.ErrorIs(t, err, generator.ErrSeparationCollapsed)
}

func TestGenerateRejectsBadInputs(t *testing.T) {
	tc := newTestContext(t, 1)

	_, err := generator.New(0, tc.Log, tc.Rand)
	require.ErrorIs(t, err, codeword.ErrBadMarkerSize)

	_, err = generator.New(4, tc.Log, tc.Rand, generator.WithPatience(0))
	require.ErrorIs(t, err, generator.ErrBadPatience)

	_, err = generator.New(4, tc.Log, tc.Rand, generator.WithMinSeparation(0))
	require.ErrorIs(t, err, generator.ErrBadMinSeparation)

	g := newGenerator(t, tc, 4)
	_, err = g.Generate(context.Background(), -1, nil)
	require.ErrorIs(t, err, generator.ErrBadTargetCount)

	_, err = g.Generate(context.Background(), 3, tc.RandomCodebook(5, 2, 0))
	require.ErrorIs(t, err, generator.ErrMarkerSizeMismatch)

	// A base containing a half turn symmetric marker has no separation.
	symmetric := tc.CodebookFromRows(0, [][]uint8{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	_, err = newGenerator(t, tc, 3).Generate(context.Background(), 3, symmetric)
	require.ErrorIs(t, err, generator.ErrSeparationCollapsed)

	_, err = generator.New(4, nil, tc.Rand)
	require.ErrorIs(t, err, generator.ErrNilLogger)

	_, err = generator.New(4, tc.Log, nil)
	require.ErrorIs(t, err, generator.ErrNilRand)
}

func TestGenerateKeepsFullBaseWithoutSeparation(t *testing.T) {
	tc := newTestContext(t, 13)

	// Half turn symmetric, so the base has no separation at all, but no
	// further markers are needed.
	symmetric := tc.CodebookFromRows(1, [][]uint8{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	for _, target := range []int{0, 1} {
		res, err := newGenerator(t, tc, 3).Generate(context.Background(), target, symmetric)
		require.NoError(t, err)
		require.Equal(t, 1, res.Codebook.Len())
		require.Equal(t, 0, res.Tau)
		require.Equal(t, 0, res.Codebook.MaxCorrectionBits())
		require.Equal(t, 0, res.Iterations)
		require.Equal(t, symmetric.Bytes(), res.Codebook.Bytes())
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	tc := newTestContext(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(t, tc, 6).Generate(ctx, 10, nil)
	require.ErrorIs(t, err, context.Canceled)
}
