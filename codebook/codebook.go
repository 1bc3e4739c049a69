// Package codebook holds ordered collections of rotation aware marker
// codewords and identifies observed markers against them.
package codebook

import (
	"fmt"

	"github.com/forestrie/go-markerbook/codeword"
)

// Codebook is an ordered, immutable set of codewords of one marker size.
// The row index is the codeword id.
//
// MaxCorrectionBits is the per marker error budget used by Identify. It is
// metadata and is not enforced when codewords are added.
//
// A Codebook is read-only after construction and may be shared between
// goroutines.
type Codebook struct {
	markerSize        int
	maxCorrectionBits int
	nBytes            int
	rows              []codeword.Codeword
}

// New builds a codebook from the flat layout
//
//	flat[i*4*nBytes + k*nBytes + j]
//
// for marker i, rotation k, byte j. The layout is not self describing, so
// markerSize, count and maxCorrectionBits are required.
func New(flat []byte, markerSize int, count int, maxCorrectionBits int) (*Codebook, error) {
	if maxCorrectionBits < 0 {
		return nil, ErrBadCorrection
	}
	rows, err := codeword.FromFlat(flat, markerSize, count)
	if err != nil {
		return nil, err
	}
	return &Codebook{
		markerSize:        markerSize,
		maxCorrectionBits: maxCorrectionBits,
		nBytes:            codeword.ByteCount(markerSize),
		rows:              rows,
	}, nil
}

// FromCodewords builds a codebook from already packed rows. The rows are
// copied.
func FromCodewords(markerSize int, maxCorrectionBits int, rows []codeword.Codeword) (*Codebook, error) {
	if err := codeword.CheckMarkerSize(markerSize); err != nil {
		return nil, err
	}
	if maxCorrectionBits < 0 {
		return nil, ErrBadCorrection
	}
	nBytes := codeword.ByteCount(markerSize)
	cb := &Codebook{
		markerSize:        markerSize,
		maxCorrectionBits: maxCorrectionBits,
		nBytes:            nBytes,
		rows:              make([]codeword.Codeword, len(rows)),
	}
	for i, row := range rows {
		if len(row) != nBytes {
			return nil, fmt.Errorf("row %d: %w", i, codeword.ErrBadByteCount)
		}
		cb.rows[i] = row.Clone()
	}
	return cb, nil
}

// MarkerSize returns the side length of every marker.
func (c *Codebook) MarkerSize() int { return c.markerSize }

// MaxCorrectionBits returns the per marker error budget.
func (c *Codebook) MaxCorrectionBits() int { return c.maxCorrectionBits }

// Len returns the number of codewords.
func (c *Codebook) Len() int { return len(c.rows) }

// Codeword returns a copy of the codeword with the given id.
func (c *Codebook) Codeword(id int) (codeword.Codeword, error) {
	if err := c.checkID(id); err != nil {
		return nil, err
	}
	return c.rows[id].Clone(), nil
}

// Codewords returns copies of all rows in id order.
func (c *Codebook) Codewords() []codeword.Codeword {
	out := make([]codeword.Codeword, len(c.rows))
	for i, row := range c.rows {
		out[i] = row.Clone()
	}
	return out
}

// Bytes returns the codebook in the flat interchange layout.
func (c *Codebook) Bytes() []byte {
	if len(c.rows) == 0 {
		return []byte{}
	}
	// rows are validated on construction, Flatten can not fail here
	flat, _ := codeword.Flatten(c.rows)
	return flat
}

// Bits decodes the rotation 0 pattern of the codeword with the given id.
func (c *Codebook) Bits(id int) (*codeword.BitMatrix, error) {
	if err := c.checkID(id); err != nil {
		return nil, err
	}
	return codeword.Decode(c.rows[id], c.markerSize)
}

// WithMaxCorrectionBits returns a copy of c carrying a different error budget.
func (c *Codebook) WithMaxCorrectionBits(maxCorrectionBits int) (*Codebook, error) {
	return FromCodewords(c.markerSize, maxCorrectionBits, c.rows)
}

func (c *Codebook) checkID(id int) error {
	if id < 0 || id >= len(c.rows) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIDOutOfRange, id, len(c.rows))
	}
	return nil
}

func (c *Codebook) encodeCandidate(candidate *codeword.BitMatrix) (codeword.Codeword, error) {
	if candidate == nil || candidate.Size() != c.markerSize {
		return nil, ErrBadCandidateSize
	}
	return codeword.Encode(candidate), nil
}
