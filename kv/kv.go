// Package kv is the persistence transport of the pantry: a small key-value
// interface storing whole JSON documents under string keys, with change
// notification so views can re-render when a document is rewritten.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrInvalidKey is returned for keys that cannot be mapped to a document name.
	ErrInvalidKey = errors.New("kv: invalid key")
)

// Store persists documents by key. Values are opaque bytes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Subscribe registers fn to be called with the key of every changed
	// document. The returned func removes the subscription.
	Subscribe(fn func(key string)) (cancel func())
	Close() error
}

// Backends accepted by Open.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for a backend name rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendDir:
		return OpenDir(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\. `) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// subscribers is the fan-out shared by all backends.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(string)
}

func (s *subscribers) add(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

func (s *subscribers) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
