package codebooktesting

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/forestrie/go-markerbook/codebookstore"
)

// TestBlobStore is an in memory stand in for azblob.Storer. Options are
// opaque outside the azblob package, so it records how many were passed to
// each put rather than interpreting them.
type TestBlobStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	PutOpts  map[string]int
	PutCount int
}

func NewTestBlobStore() *TestBlobStore {
	return &TestBlobStore{
		blobs:   map[string][]byte{},
		PutOpts: map[string]int{},
	}
}

func (s *TestBlobStore) Reader(
	ctx context.Context,
	identity string,
	opts ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[identity]
	if !ok {
		return nil, fmt.Errorf("%s: %w", identity, codebookstore.ErrBlobNotFound)
	}
	return &azblob.ReaderResponse{
		Reader: io.NopCloser(bytes.NewReader(bytes.Clone(data))),
	}, nil
}

func (s *TestBlobStore) Put(
	ctx context.Context,
	identity string,
	source io.ReadSeekCloser,
	opts ...azblob.Option,
) (*azblob.WriteResponse, error) {
	defer source.Close()
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[identity] = data
	s.PutOpts[identity] = len(opts)
	s.PutCount++
	return &azblob.WriteResponse{}, nil
}

// Data returns the bytes stored at identity.
func (s *TestBlobStore) Data(identity string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[identity]
	return data, ok
}

// SetData replaces the bytes stored at identity.
func (s *TestBlobStore) SetData(identity string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[identity] = data
}
