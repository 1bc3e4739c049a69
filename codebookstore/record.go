package codebookstore

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-markerbook/codebook"
)

// Record is the interchange form of a codebook. Bytes holds the flat layout
//
//	bytes[i*4*nBytes + k*nBytes + j]
//
// for marker i, rotation k, byte j, exactly as codebook.New reads it.
type Record struct {
	MarkerSize        uint32 `cbor:"1,keyasint"`
	MaxCorrectionBits uint32 `cbor:"2,keyasint"`
	Count             uint32 `cbor:"3,keyasint"`
	Bytes             []byte `cbor:"4,keyasint"`
}

// NewRecord captures cb.
func NewRecord(cb *codebook.Codebook) Record {
	return Record{
		MarkerSize:        uint32(cb.MarkerSize()),
		MaxCorrectionBits: uint32(cb.MaxCorrectionBits()),
		Count:             uint32(cb.Len()),
		Bytes:             cb.Bytes(),
	}
}

// Codebook rebuilds the codebook, checking the byte length against the
// declared marker size and count.
func (r Record) Codebook() (*codebook.Codebook, error) {
	cb, err := codebook.New(r.Bytes, int(r.MarkerSize), int(r.Count), int(r.MaxCorrectionBits))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	return cb, nil
}

// MarshalCodebook encodes cb as a CBOR Record.
func MarshalCodebook(codec dtcbor.CBORCodec, cb *codebook.Codebook) ([]byte, error) {
	return codec.MarshalCBOR(NewRecord(cb))
}

// UnmarshalCodebook decodes a CBOR Record and rebuilds its codebook.
func UnmarshalCodebook(codec dtcbor.CBORCodec, data []byte) (*codebook.Codebook, error) {
	var r Record
	if err := codec.UnmarshalInto(data, &r); err != nil {
		return nil, err
	}
	return r.Codebook()
}
