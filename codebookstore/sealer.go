package codebookstore

import (
	"crypto/rand"
	"crypto/sha256"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-markerbook/codebook"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

// Manifest is the signed commitment to a published codebook. The codebook
// bytes are not carried; Digest binds them instead, so a verifier must obtain
// the codebook separately and recompute it.
type Manifest struct {
	ID                []byte `cbor:"1,keyasint"`
	MarkerSize        uint32 `cbor:"2,keyasint"`
	Count             uint32 `cbor:"3,keyasint"`
	MaxCorrectionBits uint32 `cbor:"4,keyasint"`
	// Digest is sha256 over the flat codebook layout.
	Digest []byte `cbor:"5,keyasint"`
	Issuer string `cbor:"6,keyasint"`
	// Timestamp is the unix time (milliseconds) read when the manifest was
	// sealed. It allows the same codebook to be re-sealed.
	Timestamp int64 `cbor:"7,keyasint"`
}

// NewManifest describes cb under id. Timestamp is left for the caller.
func NewManifest(issuer string, id uuid.UUID, cb *codebook.Codebook) Manifest {
	digest := sha256.Sum256(cb.Bytes())
	return Manifest{
		ID:                id[:],
		MarkerSize:        uint32(cb.MarkerSize()),
		Count:             uint32(cb.Len()),
		MaxCorrectionBits: uint32(cb.MaxCorrectionBits()),
		Digest:            digest[:],
		Issuer:            issuer,
	}
}

// Sealer produces COSE Sign1 signatures over codebook manifests.
type Sealer struct {
	issuer    string
	cborCodec dtcbor.CBORCodec
}

func NewSealer(issuer string, cborCodec dtcbor.CBORCodec) Sealer {
	return Sealer{
		issuer:    issuer,
		cborCodec: cborCodec,
	}
}

func (s Sealer) Issuer() string { return s.issuer }

// Sign1 seals the manifest for cb and returns the encoded Sign1 message.
func (s Sealer) Sign1(
	coseSigner cose.Signer, keyIdentifier string, id uuid.UUID, cb *codebook.Codebook, timestamp int64, external []byte,
) ([]byte, error) {
	manifest := NewManifest(s.issuer, id, cb)
	manifest.Timestamp = timestamp

	payload, err := s.cborCodec.MarshalCBOR(manifest)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
			},
		},
		Payload: payload,
	}
	if err = msg.Sign(rand.Reader, external, coseSigner); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}
