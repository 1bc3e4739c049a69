package codeword

// hammingWeightLUT[b] is the number of set bits in b.
var hammingWeightLUT = [256]uint8{
	0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5,
	1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
	1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
	2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
	1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
	2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
	2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
	3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7, 4, 5, 5, 6, 5, 6, 6, 7, 5, 6, 6, 7, 6, 7, 7, 8,
}

// HammingWeight returns the number of set bits in b.
func HammingWeight(b byte) int { return int(hammingWeightLUT[b]) }

// Distance returns the Hamming distance between rotation ra of a and rotation
// rb of b.
//
// The caller is responsible for a and b having the same length and for ra, rb
// being in [0, Rotations).
func Distance(a Codeword, ra int, b Codeword, rb int) int {
	d := 0
	for j := range a {
		d += int(hammingWeightLUT[a[j][ra]^b[j][rb]])
	}
	return d
}

// MinDistance compares the rotation 0 bytes of candidate against the stored
// rotations of stored and returns the smallest distance together with the
// first rotation achieving it. With allRotations false only rotation 0 of
// stored is considered.
func MinDistance(candidate, stored Codeword, allRotations bool) (distance int, rotation int) {
	nRotations := Rotations
	if !allRotations {
		nRotations = 1
	}
	distance = len(candidate)*BitsPerByte + 1
	rotation = -1
	for r := 0; r < nRotations; r++ {
		d := Distance(stored, r, candidate, 0)
		if d < distance {
			distance = d
			rotation = r
		}
	}
	return distance, rotation
}

// SelfDistance returns the smallest Hamming distance between cw and its own
// non-identity rotations. A low self distance means the marker is easily
// mistaken for a rotated copy of itself.
func SelfDistance(cw Codeword) int {
	best := len(cw)*BitsPerByte + 1
	for r := 1; r < Rotations; r++ {
		if d := Distance(cw, 0, cw, r); d < best {
			best = d
		}
	}
	return best
}
