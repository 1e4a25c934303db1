package storage

import (
	"context"
	"sync"

	"github.com/xaenox/tagbot/internal/rules"
)

// MemoryStore keeps the rule set in process memory, for tests and for
// running without a database.
type MemoryStore struct {
	mu sync.RWMutex
	rs *rules.RuleSet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadRules(ctx context.Context) (*rules.RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rs == nil {
		return nil, ErrNoRules
	}
	return s.rs, nil
}

func (s *MemoryStore) SaveRules(ctx context.Context, rs *rules.RuleSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Rule sets are immutable, holding the pointer is enough.
	s.rs = rs
	return nil
}

func (s *MemoryStore) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
