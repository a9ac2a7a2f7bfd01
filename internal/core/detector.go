package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ScamDetector runs the full detection pipeline: prompt build, completion
// request, response validation, risk aggregation. Each analysis captures an
// immutable catalog snapshot at prompt-build time, so catalog mutation takes
// effect only for analyses started after the mutator returns.
type ScamDetector struct {
	mu      sync.RWMutex
	client  CompletionClient
	catalog *PatternCatalog
	policy  RiskPolicy
	logger  *zap.Logger

	// sem bounds in-flight completion requests across batches so a large
	// batch cannot overwhelm the upstream endpoint.
	sem *semaphore.Weighted
}

// DefaultMaxInFlight bounds concurrent upstream requests when no explicit
// limit is configured.
const DefaultMaxInFlight = 4

// NewScamDetector creates a detector around the given completion client.
// maxInFlight <= 0 falls back to DefaultMaxInFlight.
func NewScamDetector(
	client CompletionClient,
	catalog *PatternCatalog,
	policy RiskPolicy,
	maxInFlight int,
	logger *zap.Logger,
) *ScamDetector {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	if catalog == nil {
		catalog, _ = NewPatternCatalog()
	}
	return &ScamDetector{
		client:  client,
		catalog: catalog,
		policy:  policy,
		logger:  logger,
		sem:     semaphore.NewWeighted(int64(maxInFlight)),
	}
}

// Catalog returns the detector's pattern catalog.
func (d *ScamDetector) Catalog() *PatternCatalog {
	return d.catalog
}

// AddPattern adds a pattern to the catalog. Fails on a duplicate name.
func (d *ScamDetector) AddPattern(p ScamPattern) error {
	return d.catalog.Add(p)
}

// AddPatterns adds multiple patterns, stopping at the first failure.
func (d *ScamDetector) AddPatterns(patterns []ScamPattern) error {
	return d.catalog.AddAll(patterns)
}

// RemovePattern removes a pattern by name, reporting whether it existed.
func (d *ScamDetector) RemovePattern(name string) bool {
	return d.catalog.Remove(name)
}

// ClearPatterns empties the catalog.
func (d *ScamDetector) ClearPatterns() {
	d.catalog.Clear()
}

// Patterns returns a snapshot of the catalog in insertion order.
func (d *ScamDetector) Patterns() []ScamPattern {
	return d.catalog.Snapshot()
}

// SetCompletionClient swaps the upstream client and returns the previous one.
// Analyses already in flight finish against the client they started with; the
// caller owns closing the replaced client once those drain.
func (d *ScamDetector) SetCompletionClient(client CompletionClient) CompletionClient {
	d.mu.Lock()
	prev := d.client
	d.client = client
	d.mu.Unlock()
	return prev
}

func (d *ScamDetector) completionClient() CompletionClient {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.client
}

// Analyze runs the pipeline once for one message. Transport, upstream, and
// format failures propagate unchanged; the detector never retries. A parse
// failure is an error, never a silent "no risk" verdict.
func (d *ScamDetector) Analyze(ctx context.Context, msg *Message) (*DetectionResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	snapshot := d.catalog.Snapshot()
	userPrompt := BuildAnalysisPrompt(snapshot, msg)
	client := d.completionClient()

	raw, err := client.Complete(ctx, SystemPrompt, userPrompt, nil)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(snapshot))
	severities := make(map[string]RiskLevel, len(snapshot))
	for _, p := range snapshot {
		known[p.Name] = struct{}{}
		severities[p.Name] = p.Severity
	}

	parsed, err := ParseResponse(raw, known)
	if err != nil {
		return nil, err
	}
	for _, note := range parsed.Notes {
		d.logger.Warn("Dropped invalid match entry", zap.String("note", note))
	}

	isScam, level := d.policy.Aggregate(parsed.Matches, severities)

	matches := parsed.Matches
	if matches == nil {
		matches = []PatternMatch{}
	}
	return &DetectionResult{
		ID:              uuid.NewString(),
		IsScam:          isScam,
		RiskLevel:       level,
		MatchedPatterns: matches,
		Summary:         parsed.Summary,
		Notes:           parsed.Notes,
		AnalyzedAt:      time.Now(),
		ModelUsed:       client.ModelName(),
		RawResponse:     raw,
	}, nil
}

// AnalyzeText analyzes a bare string.
func (d *ScamDetector) AnalyzeText(ctx context.Context, text string) (*DetectionResult, error) {
	return d.Analyze(ctx, &Message{Content: text})
}

// BatchResult is one positional slot of a batch analysis: either a result or
// the error that analysis raised. Exactly one field is set.
type BatchResult struct {
	Result *DetectionResult
	Err    error
}

// BatchOptions controls batch failure semantics.
type BatchOptions struct {
	// FailFast cancels remaining analyses on the first failure and returns
	// that error. Otherwise each slot carries its own outcome.
	FailFast bool
}

// AnalyzeBatch analyzes messages concurrently, bounded by the admission gate.
// The returned slice is positionally aligned with the input regardless of
// completion order. Without FailFast a single failure never aborts the batch.
// Cancelling ctx stops not-yet-completed analyses; their slots carry the
// cancellation error while completed slots keep their results.
func (d *ScamDetector) AnalyzeBatch(ctx context.Context, msgs []Message, opts *BatchOptions) ([]BatchResult, error) {
	results := make([]BatchResult, len(msgs))
	if len(msgs) == 0 {
		return results, nil
	}

	if opts != nil && opts.FailFast {
		g, gctx := errgroup.WithContext(ctx)
		for i := range msgs {
			i := i
			g.Go(func() error {
				if err := d.sem.Acquire(gctx, 1); err != nil {
					results[i] = BatchResult{Err: err}
					return err
				}
				defer d.sem.Release(1)
				res, err := d.Analyze(gctx, &msgs[i])
				results[i] = BatchResult{Result: res, Err: err}
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return results, err
		}
		return results, nil
	}

	var wg sync.WaitGroup
	for i := range msgs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.sem.Acquire(ctx, 1); err != nil {
				results[i] = BatchResult{Err: err}
				return
			}
			defer d.sem.Release(1)
			res, err := d.Analyze(ctx, &msgs[i])
			results[i] = BatchResult{Result: res, Err: err}
		}()
	}
	wg.Wait()
	return results, nil
}
