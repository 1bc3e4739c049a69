package codeword

// MaxMarkerSize bounds the marker side so that cell and byte counts can not
// overflow.
const MaxMarkerSize = 4096

// CheckMarkerSize validates markerSize for sizing computations.
func CheckMarkerSize(markerSize int) error {
	if markerSize <= 0 || markerSize > MaxMarkerSize {
		return ErrBadMarkerSize
	}
	return nil
}

// CellCount returns markerSize².
func CellCount(markerSize int) int {
	return markerSize * markerSize
}

// ByteCount returns ceil(markerSize²/8).
//
// The caller is responsible for ensuring markerSize is in range.
// CheckMarkerSize can be used to check this.
func ByteCount(markerSize int) int {
	return (CellCount(markerSize) + BitsPerByte - 1) / BitsPerByte
}

// FlatBytes returns the required length of a flat buffer holding count
// codewords in all four rotations:
//
//	count * 4 * ByteCount(markerSize)
//
// The product is not checked for overflow; FromFlat does not rely on it.
func FlatBytes(markerSize int, count int) int {
	return count * Rotations * ByteCount(markerSize)
}

// tailBits returns the number of cells packed into the final byte. It is 8
// when markerSize² is a multiple of 8.
func tailBits(markerSize int) int {
	rem := CellCount(markerSize) % BitsPerByte
	if rem == 0 {
		return BitsPerByte
	}
	return rem
}
