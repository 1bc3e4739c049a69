package codebooktesting

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/azkeys"
	"github.com/forestrie/go-markerbook/codebookstore"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
)

func TestGenerateECKey(t *testing.T, curve elliptic.Curve) ecdsa.PrivateKey {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return *privateKey
}

// TestNewSigner returns an ES256 signer over a fresh P-256 key. It is the
// in process stand in for a Key Vault signer.
func TestNewSigner(t *testing.T) (cose.Signer, *ecdsa.PublicKey) {
	key := TestGenerateECKey(t, elliptic.P256())
	coseSigner := azkeys.NewTestCoseSigner(t, key)
	pubKey, err := coseSigner.PublicKey()
	require.NoError(t, err)
	return coseSigner, pubKey
}

func TestNewSealer(t *testing.T, issuer string) codebookstore.Sealer {
	cborCodec, err := codebookstore.NewCBORCodec()
	require.NoError(t, err)
	return codebookstore.NewSealer(issuer, cborCodec)
}

// NewStore returns a store over the context's in memory blobs.
func (c *TestContext) NewStore() *codebookstore.Store {
	s, err := codebookstore.NewStore(codebookstore.StoreConfig{}, c.Log, c.Store)
	require.NoError(c.T, err)
	return s
}
