package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete when no value is stored for a key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists one opaque string value per key. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
