package core

import (
	"context"
	"time"
)

// CompletionOptions are per-call overrides for a completion request. A nil
// options value (or zero field) falls back to the client's configured default.
type CompletionOptions struct {
	Model       string
	Temperature *float32
	MaxTokens   int
	Timeout     time.Duration
}

// CompletionClient is the outbound port to a chat-completion LLM service.
// Implementations send one request per call, reuse the underlying connection
// across calls, and never retry internally; retry policy belongs to callers.
type CompletionClient interface {
	// Complete sends a system+user message pair and returns the raw text of
	// the model's reply. Failures are *TransportError or *UpstreamError.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts *CompletionOptions) (string, error)

	// ModelName returns the identifier of the model the client targets,
	// for result attribution.
	ModelName() string

	// Close releases the underlying connection resources.
	Close() error
}

// PatternStore persists the pattern catalog across restarts. Insertion order
// must survive a round trip.
type PatternStore interface {
	// LoadAll returns every stored pattern in insertion order.
	LoadAll(ctx context.Context) ([]ScamPattern, error)

	// Put inserts or updates a single pattern.
	Put(ctx context.Context, pattern ScamPattern) error

	// Delete removes a pattern by name. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	// ReplaceAll atomically replaces the stored set with the given patterns.
	ReplaceAll(ctx context.Context, patterns []ScamPattern) error

	// Close releases any underlying resources.
	Close() error
}
