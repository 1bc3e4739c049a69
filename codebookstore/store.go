package codebookstore

import (
	"context"
	"crypto"
	"fmt"
	"io"
	"strconv"

	"github.com/datatrails/go-datatrails-common/azblob"
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-markerbook/codebook"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

const (
	TagMarkerSize = "markersize"
	TagCount      = "count"
)

// blobStore is the part of azblob.Storer the store needs.
type blobStore interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)

	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
}

type StoreConfig struct {
	// Prefix is prepended to every object path. Defaults to V1CodebookPrefix.
	Prefix string
}

// Store saves and loads codebooks, and their seals, as blobs.
type Store struct {
	Cfg   StoreConfig
	Log   logger.Logger
	Blobs blobStore
	codec dtcbor.CBORCodec
}

func NewStore(cfg StoreConfig, log logger.Logger, blobs blobStore) (*Store, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = V1CodebookPrefix
	}
	codec, err := NewCBORCodec()
	if err != nil {
		return nil, err
	}
	s := &Store{
		Cfg:   cfg,
		Log:   log,
		Blobs: blobs,
		codec: codec,
	}
	return s, nil
}

func (s *Store) Codec() dtcbor.CBORCodec { return s.codec }

// Put writes cb under id. When failIfExists is set an existing object is left
// untouched and the put fails.
func (s *Store) Put(ctx context.Context, id uuid.UUID, cb *codebook.Codebook, failIfExists bool) error {
	data, err := MarshalCodebook(s.codec, cb)
	if err != nil {
		return err
	}

	tags := map[string]string{
		TagMarkerSize: strconv.Itoa(cb.MarkerSize()),
		TagCount:      strconv.Itoa(cb.Len()),
	}
	storagePath := CodebookPath(s.Cfg.Prefix, id)
	if err = s.put(ctx, storagePath, data, tags, failIfExists); err != nil {
		return err
	}
	s.Log.Debugf("put codebook %s: %d markers of size %d", storagePath, cb.Len(), cb.MarkerSize())
	return nil
}

// Get reads the codebook stored under id. A missing object is reported as
// ErrCodebookNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*codebook.Codebook, error) {
	storagePath := CodebookPath(s.Cfg.Prefix, id)
	data, err := s.read(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	cb, err := UnmarshalCodebook(s.codec, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", storagePath, err)
	}
	s.Log.Debugf("get codebook %s: %d markers of size %d", storagePath, cb.Len(), cb.MarkerSize())
	return cb, nil
}

// PutSeal writes a sealed manifest beside the codebook it describes. Seals are
// never overwritten.
func (s *Store) PutSeal(ctx context.Context, id uuid.UUID, sealed []byte) error {
	return s.put(ctx, SealPath(s.Cfg.Prefix, id), sealed, map[string]string{}, true)
}

// GetSeal reads the sealed manifest for id.
func (s *Store) GetSeal(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return s.read(ctx, SealPath(s.Cfg.Prefix, id))
}

// Publish stores cb under a fresh id together with a seal produced by sealer.
func (s *Store) Publish(
	ctx context.Context, sealer Sealer, signer cose.Signer, keyIdentifier string,
	cb *codebook.Codebook, timestamp int64,
) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	sealed, err := sealer.Sign1(signer, keyIdentifier, id, cb, timestamp, nil)
	if err != nil {
		return uuid.Nil, err
	}
	if err = s.Put(ctx, id, cb, true); err != nil {
		return uuid.Nil, err
	}
	if err = s.PutSeal(ctx, id, sealed); err != nil {
		return uuid.Nil, err
	}
	s.Log.Infof("published codebook %s for issuer %s", id, sealer.Issuer())
	return id, nil
}

// GetVerified reads the codebook and its seal and verifies one against the
// other using publicKey.
func (s *Store) GetVerified(
	ctx context.Context, id uuid.UUID, publicKey crypto.PublicKey,
) (*codebook.Codebook, Manifest, error) {
	cb, err := s.Get(ctx, id)
	if err != nil {
		return nil, Manifest{}, err
	}
	sealed, err := s.GetSeal(ctx, id)
	if err != nil {
		return nil, Manifest{}, err
	}
	manifest, err := VerifySeal(s.codec, publicKey, sealed, id, cb, nil)
	if err != nil {
		return nil, Manifest{}, err
	}
	return cb, manifest, nil
}

func (s *Store) put(
	ctx context.Context, storagePath string, data []byte, tags map[string]string, failIfExists bool,
) error {
	opts := []azblob.Option{azblob.WithTags(tags)}
	if failIfExists {
		// The way to spell 'fail without modifying if the blob exists' is to
		// require that no blob matches *any* etag.
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}
	_, err := s.Blobs.Put(ctx, storagePath, azblob.NewBytesReaderCloser(data), opts...)
	return err
}

func (s *Store) read(ctx context.Context, storagePath string) ([]byte, error) {
	rr, err := s.Blobs.Reader(ctx, storagePath)
	if err != nil {
		return nil, wrapNotFound(err, storagePath)
	}
	defer rr.Reader.Close()
	return io.ReadAll(rr.Reader)
}
