package codebooktesting

import (
	"math/rand/v2"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-markerbook/codebook"
	"github.com/forestrie/go-markerbook/codeword"
	"github.com/stretchr/testify/require"
)

type TestContext struct {
	Log   logger.Logger
	Rand  *rand.Rand
	Store *TestBlobStore
	T     *testing.T
}

type TestConfig struct {
	// We seed the RNG from Seed. It is normal to force it to some fixed value
	// so that the generated markers are the same from run to run.
	Seed            uint64
	TestLabelPrefix string
	LogLevel        string // can be "" defaults to NOOP
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	c.Rand = NewRand(cfg.Seed)
	c.Store = NewTestBlobStore()
	return c
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RandomMatrix draws a uniformly random marker.
func (c *TestContext) RandomMatrix(size int) *codeword.BitMatrix {
	m, err := codeword.RandomBitMatrix(c.Rand, size)
	require.NoError(c.T, err)
	return m
}

// FlipBits returns a copy of m with n distinct cells inverted.
func (c *TestContext) FlipBits(m *codeword.BitMatrix, n int) *codeword.BitMatrix {
	size := m.Size()
	require.LessOrEqual(c.T, n, size*size)
	out := m.Clone()
	for _, cell := range c.Rand.Perm(size * size)[:n] {
		out.Flip(cell/size, cell%size)
	}
	return out
}

// RandomCodebook builds a codebook of count random markers. No separation is
// guaranteed.
func (c *TestContext) RandomCodebook(size int, count int, maxCorrectionBits int) *codebook.Codebook {
	rows := make([]codeword.Codeword, count)
	for i := range rows {
		rows[i] = codeword.Encode(c.RandomMatrix(size))
	}
	cb, err := codebook.FromCodewords(size, maxCorrectionBits, rows)
	require.NoError(c.T, err)
	return cb
}

// CodebookFromRows builds a codebook from literal 0/1 marker rows.
func (c *TestContext) CodebookFromRows(maxCorrectionBits int, markers ...[][]uint8) *codebook.Codebook {
	require.NotEmpty(c.T, markers)
	rows := make([]codeword.Codeword, len(markers))
	for i, marker := range markers {
		m, err := codeword.BitMatrixFromRows(marker)
		require.NoError(c.T, err)
		rows[i] = codeword.Encode(m)
	}
	cb, err := codebook.FromCodewords(len(markers[0]), maxCorrectionBits, rows)
	require.NoError(c.T, err)
	return cb
}
