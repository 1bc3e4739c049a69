package codebookstore_test

import (
	"context"
	"testing"

	"github.com/forestrie/go-markerbook/codebookstore"
	"github.com/forestrie/go-markerbook/codebooktesting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	tc := newTestContext(t, 21)
	s := tc.NewStore()
	ctx := context.Background()

	cb := tc.RandomCodebook(5, 10, 3)
	id := uuid.New()

	require.NoError(t, s.Put(ctx, id, cb, false))
	path := codebookstore.CodebookPath(codebookstore.V1CodebookPrefix, id)
	_, ok := tc.Store.Data(path)
	require.True(t, ok)
	assert.Equal(t, 1, tc.Store.PutOpts[path], "tags only")

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cb.Bytes(), got.Bytes())
	assert.Equal(t, cb.MaxCorrectionBits(), got.MaxCorrectionBits())

	// Every stored marker identifies as itself after the round trip.
	for i := 0; i < got.Len(); i++ {
		bits, err := got.Bits(i)
		require.NoError(t, err)
		d, err := cb.DistanceToID(bits, i, false)
		require.NoError(t, err)
		assert.Equal(t, 0, d)
	}

	require.NoError(t, s.Put(ctx, id, cb, true))
	assert.Equal(t, 2, tc.Store.PutOpts[path], "tags and etag none match")
}

func TestStore_GetMissing(t *testing.T) {
	tc := newTestContext(t, 22)
	s := tc.NewStore()

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, codebookstore.ErrCodebookNotFound)
	assert.True(t, codebookstore.IsBlobNotFound(err))
}

func TestStore_GetCorrupt(t *testing.T) {
	tc := newTestContext(t, 23)
	s := tc.NewStore()
	id := uuid.New()

	tc.Store.SetData(codebookstore.CodebookPath(codebookstore.V1CodebookPrefix, id), []byte{0xa0})
	_, err := s.Get(context.Background(), id)
	assert.ErrorIs(t, err, codebookstore.ErrBadRecord)
}

func TestStore_CustomPrefix(t *testing.T) {
	tc := newTestContext(t, 24)
	s, err := codebookstore.NewStore(codebookstore.StoreConfig{Prefix: "test/books/"}, tc.Log, tc.Store)
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, s.Put(context.Background(), id, tc.RandomCodebook(4, 2, 0), false))
	_, ok := tc.Store.Data("test/books/" + id.String() + ".cbor")
	assert.True(t, ok)
}

func TestStore_PublishVerified(t *testing.T) {
	tc := newTestContext(t, 25)
	s := tc.NewStore()
	ctx := context.Background()

	signer, pub := codebooktesting.TestNewSigner(t)
	sealer := codebooktesting.TestNewSealer(t, "synsation.org")
	cb := tc.RandomCodebook(6, 5, 4)

	id, err := s.Publish(ctx, sealer, signer, "codebook key 1", cb, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, tc.Store.PutCount)

	got, manifest, err := s.GetVerified(ctx, id, pub)
	require.NoError(t, err)
	assert.Equal(t, cb.Bytes(), got.Bytes())
	assert.Equal(t, "synsation.org", manifest.Issuer)
	assert.Equal(t, int64(42), manifest.Timestamp)

	// Replace the stored codebook with a different one of the same shape.
	tampered := tc.RandomCodebook(6, 5, 4)
	require.NoError(t, s.Put(ctx, id, tampered, false))
	_, _, err = s.GetVerified(ctx, id, pub)
	assert.ErrorIs(t, err, codebookstore.ErrManifestMismatch)

	// A codebook without a seal can not be verified.
	bare := uuid.New()
	require.NoError(t, s.Put(ctx, bare, cb, true))
	_, _, err = s.GetVerified(ctx, bare, pub)
	assert.ErrorIs(t, err, codebookstore.ErrCodebookNotFound)
}
