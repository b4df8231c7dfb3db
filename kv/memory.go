package kv

import (
	"context"
	"slices"
	"sync"
)

// Memory is a process-local Store.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
	subs subscribers
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = slices.Clone(value)
	m.mu.Unlock()
	m.subs.notify(key)
	return nil
}

func (m *Memory) Subscribe(fn func(key string)) func() { return m.subs.add(fn) }

func (m *Memory) Close() error { return nil }
