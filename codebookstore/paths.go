package codebookstore

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	V1CodebookPrefix      = "v1/codebooks/"
	V1CodebookBlobNameFmt = "%s.cbor"
	V1SealBlobNameFmt     = "%s.sth"
)

// CodebookPath returns {prefix}{uuid}.cbor
func CodebookPath(prefix string, id uuid.UUID) string {
	return prefix + fmt.Sprintf(V1CodebookBlobNameFmt, id.String())
}

// SealPath returns {prefix}{uuid}.sth, the sealed manifest stored beside a
// codebook.
func SealPath(prefix string, id uuid.UUID) string {
	return prefix + fmt.Sprintf(V1SealBlobNameFmt, id.String())
}

// CodebookIDFromPath recovers the codebook id from a path produced by
// CodebookPath with the same prefix.
func CodebookIDFromPath(prefix string, storagePath string) (uuid.UUID, error) {
	name, ok := strings.CutPrefix(storagePath, prefix)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s missing prefix %s", ErrBadPath, storagePath, prefix)
	}
	uuidStr, ok := strings.CutSuffix(name, ".cbor")
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrBadPath, storagePath)
	}
	id, err := uuid.Parse(uuidStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %w", ErrBadPath, storagePath, err)
	}
	return id, nil
}
