package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// MemoryStore is an in-memory implementation of the PatternStore port.
// Contents do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	patterns []core.ScamPattern
	index    map[string]int
	logger   *zap.Logger
}

// NewMemoryStore creates a new in-memory pattern store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		index:  make(map[string]int),
		logger: logger,
	}
}

// LoadAll returns every stored pattern in insertion order.
func (s *MemoryStore) LoadAll(_ context.Context) ([]core.ScamPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ScamPattern, len(s.patterns))
	copy(out, s.patterns)
	return out, nil
}

// Put inserts or updates a single pattern.
func (s *MemoryStore) Put(_ context.Context, p core.ScamPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, exists := s.index[p.Name]; exists {
		s.patterns[i] = p
		return nil
	}
	s.index[p.Name] = len(s.patterns)
	s.patterns = append(s.patterns, p)
	return nil
}

// Delete removes a pattern by name.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, exists := s.index[name]
	if !exists {
		return nil
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.patterns); j++ {
		s.index[s.patterns[j].Name] = j
	}
	return nil
}

// ReplaceAll replaces the stored set with the given patterns.
func (s *MemoryStore) ReplaceAll(_ context.Context, patterns []core.ScamPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = make([]core.ScamPattern, len(patterns))
	copy(s.patterns, patterns)
	s.index = make(map[string]int, len(patterns))
	for i, p := range s.patterns {
		s.index[p.Name] = i
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
