// Package embcache caches query embeddings behind a domain.Embedder decorator.
package embcache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/meenakshi0478/ai-product-search/internal/db"
)

// Store is the byte-level backing store for cached embeddings.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps cached embeddings in-process.
// With capacity > 0 it evicts least-recently-used entries; otherwise it
// grows without bound. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	lru     *lru.Cache[string, []byte]
}

// NewMemoryStore creates an in-memory store. capacity <= 0 means unbounded.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity > 0 {
		c, err := lru.New[string, []byte](capacity)
		if err != nil {
			return nil, err
		}
		return &MemoryStore{lru: c}, nil
	}
	return &MemoryStore{entries: make(map[string][]byte)}, nil
}

// Get returns the cached value or db.ErrKeyNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.lru != nil {
		if v, ok := m.lru.Get(key); ok {
			return v, nil
		}
		return nil, db.ErrKeyNotFound
	}

	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

// Set stores a value, overwriting any existing entry for the key.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if m.lru != nil {
		m.lru.Add(key, value)
		return nil
	}

	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
	return nil
}

// Clear drops every cached entry.
func (m *MemoryStore) Clear(_ context.Context) error {
	if m.lru != nil {
		m.lru.Purge()
		return nil
	}

	m.mu.Lock()
	m.entries = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}

// kvClearer is the subset of db.HashStore Clear needs on top of db.KVStore.
type kvClearer interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
}

// RedisStore backs the cache with the vector store's key-value commands, so
// cached embeddings are shared between instances and survive restarts.
type RedisStore struct {
	kv     db.KVStore
	keys   kvClearer
	prefix string
}

// NewRedisStore creates a redis-backed cache store. Keys are namespaced
// under prefix; Clear scans and deletes only that namespace.
func NewRedisStore(kv db.KVStore, keys kvClearer, prefix string) *RedisStore {
	return &RedisStore{kv: kv, keys: keys, prefix: prefix}
}

// Get retrieves a cached value.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return r.kv.Get(ctx, r.prefix+key)
}

// Set stores a cached value.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.kv.Set(ctx, r.prefix+key, value)
}

// Clear removes every key in the cache namespace.
func (r *RedisStore) Clear(ctx context.Context) error {
	keys, err := r.keys.Scan(ctx, r.prefix+"*")
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := r.keys.Del(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
