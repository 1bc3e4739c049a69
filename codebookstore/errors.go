package codebookstore

import "errors"

var (
	ErrBadRecord        = errors.New("codebookstore: record does not describe a valid codebook")
	ErrBadPath          = errors.New("codebookstore: object path is not a codebook path")
	ErrManifestMismatch = errors.New("codebookstore: sealed manifest does not match the codebook")
	ErrCodebookNotFound = errors.New("codebookstore: codebook not found")
)
