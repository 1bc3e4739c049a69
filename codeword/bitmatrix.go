package codeword

import "math/rand/v2"

// BitMatrix is a square matrix of single bit cells stored in row-major order.
type BitMatrix struct {
	size  int
	cells []uint8
}

// NewBitMatrix returns an all-zero matrix of side size.
func NewBitMatrix(size int) (*BitMatrix, error) {
	if err := CheckMarkerSize(size); err != nil {
		return nil, err
	}
	return &BitMatrix{size: size, cells: make([]uint8, CellCount(size))}, nil
}

// BitMatrixFromRows builds a matrix from rows of 0/1 values.
func BitMatrixFromRows(rows [][]uint8) (*BitMatrix, error) {
	n := len(rows)
	if err := CheckMarkerSize(n); err != nil {
		return nil, err
	}
	m := &BitMatrix{size: n, cells: make([]uint8, 0, n*n)}
	for _, row := range rows {
		if len(row) != n {
			return nil, ErrBadRows
		}
		for _, v := range row {
			if v > 1 {
				return nil, ErrBadCellValue
			}
			m.cells = append(m.cells, v)
		}
	}
	return m, nil
}

// RandomBitMatrix draws every cell uniformly from rng.
func RandomBitMatrix(rng *rand.Rand, size int) (*BitMatrix, error) {
	m, err := NewBitMatrix(size)
	if err != nil {
		return nil, err
	}
	for i := range m.cells {
		m.cells[i] = uint8(rng.IntN(2))
	}
	return m, nil
}

// Size returns the side length.
func (m *BitMatrix) Size() int { return m.size }

// At reports whether the cell at (row, col) is set.
//
// The caller is responsible for keeping row and col in [0, Size()).
func (m *BitMatrix) At(row, col int) bool {
	return m.cells[row*m.size+col] != 0
}

// Set assigns the cell at (row, col).
func (m *BitMatrix) Set(row, col int, v bool) {
	var b uint8
	if v {
		b = 1
	}
	m.cells[row*m.size+col] = b
}

// Flip inverts the cell at (row, col).
func (m *BitMatrix) Flip(row, col int) {
	m.cells[row*m.size+col] ^= 1
}

// Rows returns a copy of the cells as rows of 0/1 values.
func (m *BitMatrix) Rows() [][]uint8 {
	rows := make([][]uint8, m.size)
	for r := range rows {
		rows[r] = append([]uint8(nil), m.cells[r*m.size:(r+1)*m.size]...)
	}
	return rows
}

// Rotate returns the matrix turned by one quarter in the sense of codeword
// rotation 1:
//
//	out(r, c) = in(c, n-1-r)
//
// Encoding the result yields, at rotation 0, the rotation 1 bytes of the
// original.
func (m *BitMatrix) Rotate() *BitMatrix {
	n := m.size
	out := &BitMatrix{size: n, cells: make([]uint8, len(m.cells))}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.cells[r*n+c] = m.cells[c*n+(n-1-r)]
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	return &BitMatrix{size: m.size, cells: append([]uint8(nil), m.cells...)}
}

// Equal reports whether both matrices have the same size and cells.
func (m *BitMatrix) Equal(other *BitMatrix) bool {
	if other == nil || m.size != other.size {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
