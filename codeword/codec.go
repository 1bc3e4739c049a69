package codeword

// Encode packs m into a codeword carrying all four rotations.
//
// Cells are visited in row-major order. For each visited position the four
// accumulators are shifted left in lockstep and incremented when the
// corresponding rotated source cell is set:
//
//	rotation 0: (row, col)
//	rotation 1: (col, n-1-row)
//	rotation 2: (n-1-row, n-1-col)
//	rotation 3: (n-1-col, row)
//
// When n² is not a multiple of 8 the final byte receives fewer shifts, so its
// bits are right aligned.
func Encode(m *BitMatrix) Codeword {
	n := m.size
	cw := make(Codeword, ByteCount(n))

	currentByte := 0
	currentBit := 0
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			acc := &cw[currentByte]
			acc[0] <<= 1
			acc[1] <<= 1
			acc[2] <<= 1
			acc[3] <<= 1
			if m.At(row, col) {
				acc[0]++
			}
			if m.At(col, n-1-row) {
				acc[1]++
			}
			if m.At(n-1-row, n-1-col) {
				acc[2]++
			}
			if m.At(n-1-col, row) {
				acc[3]++
			}

			currentBit++
			if currentBit == BitsPerByte {
				currentBit = 0
				currentByte++
			}
		}
	}
	return cw
}

// Decode unpacks the rotation 0 bytes of cw into a markerSize x markerSize
// matrix. Bits are consumed most significant first; the final partial byte
// is read from its highest populated bit.
func Decode(cw Codeword, markerSize int) (*BitMatrix, error) {
	if err := CheckMarkerSize(markerSize); err != nil {
		return nil, err
	}
	if len(cw) != ByteCount(markerSize) {
		return nil, ErrBadByteCount
	}
	return decodeBytes(len(cw), func(j int) byte { return cw[j][0] }, markerSize), nil
}

// DecodeBytes is Decode for a plain rotation 0 byte sequence.
func DecodeBytes(b []byte, markerSize int) (*BitMatrix, error) {
	if err := CheckMarkerSize(markerSize); err != nil {
		return nil, err
	}
	if len(b) != ByteCount(markerSize) {
		return nil, ErrBadByteCount
	}
	return decodeBytes(len(b), func(j int) byte { return b[j] }, markerSize), nil
}

func decodeBytes(nBytes int, byteAt func(j int) byte, markerSize int) *BitMatrix {
	m := &BitMatrix{size: markerSize, cells: make([]uint8, CellCount(markerSize))}
	tail := tailBits(markerSize)
	for i := range m.cells {
		j := i / BitsPerByte
		width := BitsPerByte
		if j == nBytes-1 {
			width = tail
		}
		shift := width - 1 - i%BitsPerByte
		m.cells[i] = (byteAt(j) >> shift) & 1
	}
	return m
}
