package codebookstore

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
)

// NewCBORCodec returns the deterministic codec used for stored records and
// sealed manifests. Equal values always encode to equal bytes, so a manifest
// digest can be recomputed by any reader.
func NewCBORCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}
