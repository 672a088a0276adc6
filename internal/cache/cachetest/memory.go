// Package cachetest provides an in-memory cache.Cache for service tests.
package cachetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Alturino/storefront/internal/cache"
)

type Memory struct {
	mu          sync.Mutex
	values      map[string][]byte
	generations map[string]int64
	Deleted     []string
	// Err, when set, is returned by every operation.
	Err error
}

var _ cache.Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: map[string][]byte{}, generations: map[string]int64{}}
}

func (m *Memory) Get(_ context.Context, key string, dst interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	value, ok := m.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(value, dst)
}

func (m *Memory) Set(_ context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = encoded
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, keys...)
	if m.Err != nil {
		return m.Err
	}
	for _, key := range keys {
		delete(m.values, key)
		m.generations[key]++
	}
	return nil
}

func (m *Memory) Generation(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.generations[key], nil
}

func (m *Memory) SetIfGeneration(_ context.Context, key string, generation int64, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.generations[key] != generation {
		return cache.ErrStale
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = encoded
	return nil
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}
