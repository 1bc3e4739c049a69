package codebook

import (
	"math"

	"github.com/forestrie/go-markerbook/codeword"
)

// Identify looks candidate up in the codebook.
//
// The error budget is floor(MaxCorrectionBits * maxCorrectionRate), capped at
// markerSize² so that very large rates accept any candidate. Codewords
// are scanned in id order and the first one whose best rotation is within
// budget is returned, together with that rotation. Earlier ids therefore win
// ties and near ties; this is not a global nearest neighbour search.
//
// A candidate that matches nothing is not an error: the result is NoMatch.
func (c *Codebook) Identify(candidate *codeword.BitMatrix, maxCorrectionRate float64) (Match, error) {
	if math.IsNaN(maxCorrectionRate) {
		return NoMatch, ErrBadRate
	}
	cand, err := c.encodeCandidate(candidate)
	if err != nil {
		return NoMatch, err
	}
	budget := c.budget(maxCorrectionRate)

	for id, row := range c.rows {
		d, r := codeword.MinDistance(cand, row, true)
		if d <= budget {
			return Match{Found: true, ID: id, Rotation: r}, nil
		}
	}
	return NoMatch, nil
}

// DistanceToID returns the Hamming distance between candidate and the
// codeword with the given id, minimised over all four stored rotations or
// taken against rotation 0 only.
func (c *Codebook) DistanceToID(candidate *codeword.BitMatrix, id int, allRotations bool) (int, error) {
	if err := c.checkID(id); err != nil {
		return 0, err
	}
	cand, err := c.encodeCandidate(candidate)
	if err != nil {
		return 0, err
	}
	d, _ := codeword.MinDistance(cand, c.rows[id], allRotations)
	return d, nil
}

// MinSeparation returns the smallest self distance or pairwise distance found
// in the codebook. It is the separation a generator seeded with this codebook
// has to preserve. An empty codebook reports markerSize²+1.
func (c *Codebook) MinSeparation() int {
	best := codeword.CellCount(c.markerSize) + 1
	for i, row := range c.rows {
		if d := codeword.SelfDistance(row); d < best {
			best = d
		}
		for j := i + 1; j < len(c.rows); j++ {
			if d, _ := codeword.MinDistance(row, c.rows[j], true); d < best {
				best = d
			}
		}
	}
	return best
}

// budget converts a correction rate to a whole number of bits in
// [-1, markerSize²]. -1 means nothing can match.
func (c *Codebook) budget(maxCorrectionRate float64) int {
	b := math.Floor(float64(c.maxCorrectionBits) * maxCorrectionRate)
	cells := codeword.CellCount(c.markerSize)
	switch {
	case math.IsNaN(b):
		// 0 bits times an infinite rate
		return 0
	case b < 0:
		return -1
	case b > float64(cells):
		return cells
	}
	return int(b)
}
