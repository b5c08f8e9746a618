// Package storage provides the key-value backends behind the entity store.
// Every backend holds opaque byte values under string keys; the store
// decides what the values mean.
package storage

import (
	"context"
	"errors"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrClosed        = errors.New("storage backend closed")
)

// Backend is a synchronous key-value store. Writers in different processes
// are not coordinated: the last Set for a key wins.
type Backend interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
