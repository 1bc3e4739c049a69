package codebookstore

import (
	"bytes"
	"crypto"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-markerbook/codebook"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

// DecodeSeal decodes the manifest from a sealed message without verifying
// anything. See VerifySeal.
func DecodeSeal(codec dtcbor.CBORCodec, sealed []byte) (*cose.Sign1Message, Manifest, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(sealed); err != nil {
		return nil, Manifest{}, err
	}

	var unverified Manifest
	if err := codec.UnmarshalInto(msg.Payload, &unverified); err != nil {
		return nil, Manifest{}, err
	}
	return &msg, unverified, nil
}

// VerifySeal checks the signature on sealed using publicKey, and then checks
// the signed manifest describes cb under id. The algorithm is taken from the
// protected header.
func VerifySeal(
	codec dtcbor.CBORCodec, publicKey crypto.PublicKey, sealed []byte, id uuid.UUID, cb *codebook.Codebook, external []byte,
) (Manifest, error) {
	msg, manifest, err := DecodeSeal(codec, sealed)
	if err != nil {
		return Manifest{}, err
	}

	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil {
		return Manifest{}, err
	}
	verifier, err := cose.NewVerifier(alg, publicKey)
	if err != nil {
		return Manifest{}, err
	}
	if err = msg.Verify(external, verifier); err != nil {
		return Manifest{}, err
	}

	want := NewManifest(manifest.Issuer, id, cb)
	switch {
	case !bytes.Equal(want.ID, manifest.ID):
		return Manifest{}, fmt.Errorf("%w: id %x, expected %s", ErrManifestMismatch, manifest.ID, id)
	case want.MarkerSize != manifest.MarkerSize || want.Count != manifest.Count:
		return Manifest{}, fmt.Errorf(
			"%w: shape %dx%d, expected %dx%d", ErrManifestMismatch,
			manifest.Count, manifest.MarkerSize, want.Count, want.MarkerSize)
	case want.MaxCorrectionBits != manifest.MaxCorrectionBits:
		return Manifest{}, fmt.Errorf(
			"%w: max correction %d, expected %d", ErrManifestMismatch,
			manifest.MaxCorrectionBits, want.MaxCorrectionBits)
	case !bytes.Equal(want.Digest, manifest.Digest):
		return Manifest{}, fmt.Errorf("%w: digest", ErrManifestMismatch)
	}
	return manifest, nil
}
