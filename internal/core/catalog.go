package core

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// PatternCatalog is an ordered, name-keyed collection of scam patterns.
// Structural mutation is serialized behind one mutex; readers take immutable
// snapshots, so an in-flight analysis never observes a mid-flight mutation.
type PatternCatalog struct {
	mu       sync.RWMutex
	patterns []ScamPattern
	index    map[string]int
}

// NewPatternCatalog creates a catalog seeded with the given patterns.
// Duplicate or invalid seed patterns are rejected.
func NewPatternCatalog(patterns ...ScamPattern) (*PatternCatalog, error) {
	c := &PatternCatalog{index: make(map[string]int)}
	for _, p := range patterns {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add inserts a pattern at the end of the catalog. Fails if the name is
// already present.
func (c *PatternCatalog) Add(p ScamPattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Severity == "" {
		p.Severity = RiskMedium
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[p.Name]; exists {
		return fmt.Errorf("pattern %q already exists", p.Name)
	}
	c.index[p.Name] = len(c.patterns)
	c.patterns = append(c.patterns, p)
	return nil
}

// AddAll inserts multiple patterns, stopping at the first failure.
func (c *PatternCatalog) AddAll(patterns []ScamPattern) error {
	for _, p := range patterns {
		if err := c.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the pattern stored under p.Name, keeping its position.
// Fails if the name is not present.
func (c *PatternCatalog) Update(p ScamPattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Severity == "" {
		p.Severity = RiskMedium
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i, exists := c.index[p.Name]
	if !exists {
		return fmt.Errorf("pattern %q not found", p.Name)
	}
	c.patterns[i] = p
	return nil
}

// Remove deletes a pattern by name and reports whether it was present.
func (c *PatternCatalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, exists := c.index[name]
	if !exists {
		return false
	}
	c.patterns = append(c.patterns[:i], c.patterns[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.patterns); j++ {
		c.index[c.patterns[j].Name] = j
	}
	return true
}

// Clear removes every pattern.
func (c *PatternCatalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = nil
	c.index = make(map[string]int)
}

// Get returns the pattern stored under name, if present.
func (c *PatternCatalog) Get(name string) (ScamPattern, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, exists := c.index[name]
	if !exists {
		return ScamPattern{}, false
	}
	return c.patterns[i], true
}

// Len returns the number of patterns in the catalog.
func (c *PatternCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.patterns)
}

// Snapshot returns a copy of the catalog contents in insertion order. The
// copy is independent of later mutation.
func (c *PatternCatalog) Snapshot() []ScamPattern {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ScamPattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// patternDocument is the serialized form of a catalog.
type patternDocument struct {
	Patterns []ScamPattern `json:"patterns"`
}

// Export serializes the full catalog to a JSON document, preserving order.
func (c *PatternCatalog) Export() ([]byte, error) {
	doc := patternDocument{Patterns: c.Snapshot()}
	if doc.Patterns == nil {
		doc.Patterns = []ScamPattern{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportMode selects how Import treats the existing catalog contents.
type ImportMode int

const (
	// ImportMerge appends imported patterns, skipping names already present.
	ImportMerge ImportMode = iota
	// ImportReplace discards the existing catalog before importing.
	ImportReplace
)

// Import parses a JSON document produced by Export and loads its patterns.
// It returns the names that were skipped (merge mode collisions).
func (c *PatternCatalog) Import(data []byte, mode ImportMode) ([]string, error) {
	var doc patternDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid pattern document: %w", err)
	}
	for i := range doc.Patterns {
		if err := doc.Patterns[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid pattern document: %w", err)
		}
	}

	if mode == ImportReplace {
		c.Clear()
	}
	var skipped []string
	for _, p := range doc.Patterns {
		if err := c.Add(p); err != nil {
			skipped = append(skipped, p.Name)
		}
	}
	return skipped, nil
}
