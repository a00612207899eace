package testutils

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrCacheUnavailable = errors.New("cache unavailable")

// MemoryCache implements cache.Cache in memory. Values are stored as JSON so
// callers observe the same encoding as with Redis.
type MemoryCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	TTLs    map[string]time.Duration
	Failing bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{Data: map[string][]byte{}, TTLs: map[string]time.Duration{}}
}

func (m *MemoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Failing {
		return false, ErrCacheUnavailable
	}

	raw, ok := m.Data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (m *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Failing {
		return ErrCacheUnavailable
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.Data[key] = raw
	m.TTLs[key] = ttl

	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Data, key)

	return nil
}

func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.Data {
		if strings.HasPrefix(key, prefix+":") {
			delete(m.Data, key)
		}
	}

	return nil
}

func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Data[key]

	return ok
}

func (m *MemoryCache) Close() error { return nil }
