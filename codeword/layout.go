package codeword

// FromFlat reads count codewords from a flat buffer laid out as
//
//	flat[i*4*nBytes + k*nBytes + j]
//
// for marker i, rotation k, byte j. Rotations and bytes keep their order.
func FromFlat(flat []byte, markerSize int, count int) ([]Codeword, error) {
	if err := CheckMarkerSize(markerSize); err != nil {
		return nil, err
	}
	nBytes := ByteCount(markerSize)
	per := Rotations * nBytes
	if count < 0 || len(flat)%per != 0 || len(flat)/per != count {
		return nil, ErrBadFlatLength
	}

	rows := make([]Codeword, count)
	for i := range rows {
		row := make(Codeword, nBytes)
		base := i * Rotations * nBytes
		for j := 0; j < nBytes; j++ {
			for k := 0; k < Rotations; k++ {
				row[j][k] = flat[base+k*nBytes+j]
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Flatten writes rows into the flat layout read by FromFlat.
func Flatten(rows []Codeword) ([]byte, error) {
	if len(rows) == 0 {
		return []byte{}, nil
	}
	nBytes := len(rows[0])
	flat := make([]byte, len(rows)*Rotations*nBytes)
	for i, row := range rows {
		if len(row) != nBytes {
			return nil, ErrLengthMismatch
		}
		base := i * Rotations * nBytes
		for j := 0; j < nBytes; j++ {
			for k := 0; k < Rotations; k++ {
				flat[base+k*nBytes+j] = row[j][k]
			}
		}
	}
	return flat, nil
}
