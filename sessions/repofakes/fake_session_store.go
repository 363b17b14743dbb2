package fakesessionstore

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
)

var _ sessions.Store = (*FakeSessionStore)(nil)

// FakeSessionStore keeps the session in memory. It backs the "memory" store
// kind and is used throughout the tests.
type FakeSessionStore struct {
	values map[string]string
	writes map[string]int // number of Set calls per key
	lock   sync.RWMutex
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		values: make(map[string]string),
		writes: make(map[string]int),
	}
}

func (s *FakeSessionStore) Get(_ context.Context, key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (s *FakeSessionStore) Set(_ context.Context, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = value
	s.writes[key]++
	return nil
}

func (s *FakeSessionStore) Delete(_ context.Context, keys ...string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Writes returns how many times key has been written.
func (s *FakeSessionStore) Writes(key string) int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.writes[key]
}

// Has reports whether key currently holds a value.
func (s *FakeSessionStore) Has(key string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	_, ok := s.values[key]
	return ok
}
