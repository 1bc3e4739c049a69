package codeword

/*

# Rotation aware marker codewords

This package provides the primitive building blocks for square binary marker
codebooks: packing a marker bit matrix into bytes, unpacking it again and
measuring Hamming distances between packed markers.

The package keeps to:

- small, composable functions
- explicit byte layouts
- index arithmetic on byte slices
- a burden of knowledge on the caller for hot paths (Distance does not check
  lengths or rotation indices)

## 4 parallel rotations

A marker is stored once per quarter turn rotation. Every byte position holds
4 values side-by-side, one per rotation:

	cw[j] = [ rot0 byte j | rot1 byte j | rot2 byte j | rot3 byte j ]

Comparing an observed marker against all four rotations of a stored marker
only needs the rotation 0 bytes of the observation. This makes identification
invariant to the orientation the marker was seen in.

## Bit numbering

Cells are packed in row-major order, most significant bit first. A marker of
side n needs ceil(n²/8) bytes. When n² is not a multiple of 8 the final byte
holds the remaining n² mod 8 bits right aligned; its high order bits are always
zero. Every codeword of a given marker size shares this layout, so distances
are unaffected.

## Flat layout

Codebooks are exchanged as a flat byte array:

	+----------------------+  nBytes
	| marker 0, rotation 0 |
	+----------------------+  nBytes
	| marker 0, rotation 1 |
	+----------------------+  nBytes
	| marker 0, rotation 2 |
	+----------------------+  nBytes
	| marker 0, rotation 3 |
	+----------------------+
	| marker 1, rotation 0 |
	| ...                  |

FromFlat and Flatten convert between that layout and []Codeword without
reordering rotations or bytes.

*/
