package codebookstore

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const (
	azblobBlobNotFound = "BlobNotFound"
)

// ErrBlobNotFound is returned, wrapped, by stores that are not backed by the
// azure sdk when the requested object does not exist.
var ErrBlobNotFound = errors.New("codebookstore: blob not found")

func asStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// IsBlobNotFound reports whether err means the object is absent, either as
// the azure sdk error code or as ErrBlobNotFound.
func IsBlobNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBlobNotFound) {
		return true
	}
	serr, ok := asStorageError(err)
	if !ok {
		return false
	}
	return serr.ErrorCode == azblobBlobNotFound
}

// wrapNotFound translates a missing object into ErrCodebookNotFound. Any other
// err, including nil, is returned as is.
func wrapNotFound(err error, storagePath string) error {
	if !IsBlobNotFound(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrCodebookNotFound, storagePath, err)
}
