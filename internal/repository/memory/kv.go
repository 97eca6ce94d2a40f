package memory

import (
	"context"
	"sync"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
)

type kvRepositoryImpl struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewKVRepository returns an in-memory key-value store. Nothing survives a
// restart; used for tests and STORAGE_TYPE=memory.
func NewKVRepository() store.KVStore {
	return &kvRepositoryImpl{entries: make(map[string][]byte)}
}

// Get implements store.KVStore.
func (r *kvRepositoryImpl) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := r.entries[key]; ok {
			cp := make([]byte, len(value))
			copy(cp, value)
			result[key] = cp
		}
	}
	return result, nil
}

// Set implements store.KVStore.
func (r *kvRepositoryImpl) Set(ctx context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range entries {
		cp := make([]byte, len(value))
		copy(cp, value)
		r.entries[key] = cp
	}
	return nil
}

// Remove implements store.KVStore.
func (r *kvRepositoryImpl) Remove(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.entries, key)
	}
	return nil
}
