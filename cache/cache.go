// Package cache holds upstream listing bodies for their revalidate window.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streamit/types"
)

type Cache interface {
	// Get reports a miss with ok=false; err is reserved for backend failures.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	// Set stores val for ttl. A ttl of zero disables caching for the key.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// New builds the backend named by config.Cache.Backend.
func New(config types.Config) (Cache, error) {
	switch config.Cache.Backend {
	case "", "memory":
		return NewMemory(time.Now), nil
	case "redis":
		return NewRedis(RedisConfig{
			Address:  config.Cache.Redis.Address,
			Password: config.Cache.Redis.Password,
			DB:       config.Cache.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}
}

type entry struct {
	val     []byte
	expires time.Time
}

type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

func NewMemory(now func() time.Time) *Memory {
	return &Memory{now: now, entries: make(map[string]entry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.val, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{val: append([]byte(nil), val...), expires: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
