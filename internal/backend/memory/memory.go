// Package memory provides an in-process backing object, used by tests and
// as a throwaway backend for local experiments.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu    sync.Mutex
	data  []byte
	found bool

	// PutCount counts writes, letting tests assert that a no-op delete
	// performed no save.
	PutCount int
}

func New() *Store {
	return &Store{}
}

// Seed pre-populates the backing object, as if a previous run had saved it.
func Seed(data []byte) *Store {
	s := New()
	s.data = append([]byte(nil), data...)
	s.found = true
	return s
}

func (s *Store) Get(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *Store) Put(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.found = true
	s.PutCount++
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Bytes returns a copy of the current object content, or nil if absent.
func (s *Store) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return nil
	}
	return append([]byte(nil), s.data...)
}
