package kvRepo

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when the key is missing or expired.
var ErrNotFound = errors.New("key not found or expired")

// ErrConflict is returned by Update when the key kept changing underneath it.
var ErrConflict = errors.New("key modified concurrently")

// UpdateFunc receives the current JSON value of a key and returns the value to
// write. Returning a nil value leaves the key as it is.
type UpdateFunc func(current []byte) (interface{}, error)

// Store persists JSON-encoded values under a key with a time-to-live.
type Store interface {
	Save(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Load(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	// Update is a read-modify-write that only commits if the key was not written
	// by anyone else between the read and the write. Missing keys yield ErrNotFound.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error
}
