// Package metadata is the console's durable key/value store. It keeps the
// session mirror (token and user profile) and cached branding values across
// process restarts.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store.
//
// Get returns (nil, nil) for a missing key and Delete of a missing key is
// not an error. Batch runs fn against a view of the repository whose writes
// become visible together when fn returns nil, or not at all.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Batch(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}
