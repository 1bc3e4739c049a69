package codebook

import "errors"

var (
	ErrBadCandidateSize = errors.New("codebook: candidate size does not match marker size")
	ErrIDOutOfRange     = errors.New("codebook: codeword id out of range")
	ErrBadBorder        = errors.New("codebook: border width must be positive")
	ErrBadSide          = errors.New("codebook: output side must exceed marker size")
	ErrBadCorrection    = errors.New("codebook: max correction bits must not be negative")
	ErrBadRate          = errors.New("codebook: max correction rate is not a number")
	ErrUnknownName      = errors.New("codebook: unknown predefined dictionary")
	ErrTableTooShort    = errors.New("codebook: predefined table holds fewer markers than the dictionary needs")
)

// Match is the outcome of Identify. ID is -1 when nothing matched.
type Match struct {
	Found    bool
	ID       int
	Rotation int
}

// NoMatch is returned by Identify when no codeword is within budget.
var NoMatch = Match{Found: false, ID: -1, Rotation: -1}
