package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value has ever been written
// for the key. Callers treat a missing key as "start empty".
var ErrNotFound = errors.New("key not found")

// Store is the durable key-value store the cart survives restarts
// with. Values are opaque serialized blobs; reads and writes are
// synchronous and there is no transactional guarantee across keys.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}
