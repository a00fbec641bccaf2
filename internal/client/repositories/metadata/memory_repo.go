package metadata

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryRepository keeps entries in process memory. Session and branding
// tests use it in place of SQLite. The zero value is ready to use.
type MemoryRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := slices.Clone(value)
	if v == nil {
		v = []byte{}
	}
	if r.data == nil {
		r.data = make(map[string][]byte)
	}
	r.data[key] = v
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.data)
	return nil
}

// Batch applies fn to a private copy and swaps it in on success. The
// repository lock is held for the whole batch.
func (r *MemoryRepository) Batch(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &MemoryRepository{data: maps.Clone(r.data)}
	if staged.data == nil {
		staged.data = make(map[string][]byte)
	}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	r.data = staged.data
	return nil
}
