package memstore

import (
	"context"
	"sync"

	"github.com/mikey/email-triage/internal/core"
)

// InMemoryStore holds trait memory in process memory. Useful for tests
// and for sessions that do not need persistence.
type InMemoryStore struct {
	mu  sync.Mutex
	mem *core.TraitMemory
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Load returns a copy of the stored memory, or ErrNotFound before the
// first Save.
func (s *InMemoryStore) Load(_ context.Context) (*core.TraitMemory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mem == nil {
		return nil, core.ErrNotFound
	}
	return s.mem.Clone(), nil
}

// Save replaces the stored memory.
func (s *InMemoryStore) Save(_ context.Context, mem *core.TraitMemory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem = mem.Clone()
	return nil
}
