package storage

import "errors"

// ErrBucketNotFound is returned when operating on a bucket that was never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store. Keys and values are raw bytes;
// serialization is left to callers (see JSONStore).
type Backend interface {
	// CreateBucket is idempotent
	CreateBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil, nil for a missing key
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error

	// ForEach visits keys in byte order. fn must not retain k or v.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}
