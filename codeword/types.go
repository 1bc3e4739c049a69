package codeword

import "errors"

const (
	// Rotations is the number of quarter turn rotations stored per byte position.
	Rotations = 4

	// BitsPerByte is the number of matrix cells packed into each codeword byte.
	BitsPerByte = 8
)

var (
	ErrBadMarkerSize  = errors.New("codeword: marker size out of range")
	ErrBadRows        = errors.New("codeword: rows do not form a square bit matrix")
	ErrBadCellValue   = errors.New("codeword: cell values must be 0 or 1")
	ErrBadByteCount   = errors.New("codeword: byte count does not match marker size")
	ErrBadRotation    = errors.New("codeword: rotation must be in [0, 4)")
	ErrBadFlatLength  = errors.New("codeword: flat buffer length does not match marker size and count")
	ErrLengthMismatch = errors.New("codeword: codewords have different byte counts")
)

// Codeword is the packed form of one marker.
//
// Each element holds the same byte position for all four rotations of the
// source matrix: cw[j][k] is byte j of the marker in its k-th rotation.
type Codeword [][Rotations]byte

// Len returns the number of byte positions.
func (cw Codeword) Len() int { return len(cw) }

// Rotation returns a copy of the bytes for rotation k.
func (cw Codeword) Rotation(k int) ([]byte, error) {
	if k < 0 || k >= Rotations {
		return nil, ErrBadRotation
	}
	out := make([]byte, len(cw))
	for j := range cw {
		out[j] = cw[j][k]
	}
	return out, nil
}

// Clone returns a deep copy.
func (cw Codeword) Clone() Codeword {
	out := make(Codeword, len(cw))
	copy(out, cw)
	return out
}

// Equal reports whether both codewords carry identical bytes in all rotations.
func (cw Codeword) Equal(other Codeword) bool {
	if len(cw) != len(other) {
		return false
	}
	for j := range cw {
		if cw[j] != other[j] {
			return false
		}
	}
	return true
}
