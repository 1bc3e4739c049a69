package codebook_test

import (
	"testing"

	"github.com/forestrie/go-markerbook/codebook"
	"github.com/forestrie/go-markerbook/codeword"
	"github.com/stretchr/testify/require"
)

func TestLookupPredefined(t *testing.T) {
	p, ok := codebook.LookupPredefined("6X6_250")
	require.True(t, ok)
	require.Equal(t, codebook.PredefinedParams{MarkerSize: 6, Count: 250, MaxCorrectionBits: 5}, p)

	_, ok = codebook.LookupPredefined("6X6_251")
	require.False(t, ok)
}

func TestNewPredefinedUsesLeadingMarkers(t *testing.T) {
	tc := newTestContext(t)
	table := tc.RandomCodebook(4, 120, 0).Bytes()

	cb, err := codebook.NewPredefined("4X4_100", table)
	require.NoError(t, err)
	require.Equal(t, 100, cb.Len())
	require.Equal(t, 4, cb.MarkerSize())
	require.Equal(t, 1, cb.MaxCorrectionBits())
	require.Equal(t, table[:codeword.FlatBytes(4, 100)], cb.Bytes())

	_, err = codebook.NewPredefined("4X4_250", table)
	require.ErrorIs(t, err, codebook.ErrTableTooShort)

	_, err = codebook.NewPredefined("3X3_10", table)
	require.ErrorIs(t, err, codebook.ErrUnknownName)
}
