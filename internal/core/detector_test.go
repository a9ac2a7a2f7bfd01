package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeClient scripts completion replies per message content.
type fakeClient struct {
	mu       sync.Mutex
	replies  map[string]string
	errs     map[string]error
	fallback string
	calls    int
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *CompletionOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Err: err}
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	for key, err := range f.errs {
		if strings.Contains(userPrompt, key) {
			return "", err
		}
	}
	for key, reply := range f.replies {
		if strings.Contains(userPrompt, key) {
			return reply, nil
		}
	}
	return f.fallback, nil
}

func (f *fakeClient) ModelName() string { return "fake-model" }
func (f *fakeClient) Close() error      { return nil }

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestDetector(t *testing.T, client CompletionClient) *ScamDetector {
	t.Helper()
	catalog, err := NewPatternCatalog(CommonPatterns()...)
	if err != nil {
		t.Fatalf("NewPatternCatalog() error = %v", err)
	}
	return NewScamDetector(client, catalog, DefaultRiskPolicy(), 2, zap.NewNop())
}

func TestAnalyze(t *testing.T) {
	client := &fakeClient{
		fallback: `{"matches": [{"pattern_name": "advance_fee", "confidence": 0.92,
			"evidence": ["pay the fee first"]}], "summary": "advance fee scam"}`,
	}
	d := newTestDetector(t, client)

	result, err := d.Analyze(context.Background(), &Message{Content: "pay the fee first to claim your prize"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !result.IsScam {
		t.Error("IsScam = false, want true")
	}
	// advance_fee defaults to high; 0.92 >= 0.85 escalates to critical.
	if result.RiskLevel != RiskCritical {
		t.Errorf("RiskLevel = %v, want critical", result.RiskLevel)
	}
	if top := result.HighestConfidenceMatch(); top == nil || top.PatternName != "advance_fee" {
		t.Errorf("HighestConfidenceMatch() = %+v", top)
	}
	if result.ID == "" {
		t.Error("result ID is empty")
	}
	if result.ModelUsed != "fake-model" {
		t.Errorf("ModelUsed = %q", result.ModelUsed)
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt is zero")
	}
}

func TestAnalyzeCleanMessage(t *testing.T) {
	client := &fakeClient{fallback: `{"matches": [], "summary": "Nothing suspicious."}`}
	d := newTestDetector(t, client)

	result, err := d.Analyze(context.Background(), &Message{Content: "see you at lunch tomorrow"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.IsScam || result.RiskLevel != RiskNone {
		t.Errorf("clean message = (%v, %v), want (false, none)", result.IsScam, result.RiskLevel)
	}
	if result.MatchedPatterns == nil {
		t.Error("MatchedPatterns should be an empty slice, not nil")
	}
}

func TestAnalyzeValidatesMessage(t *testing.T) {
	d := newTestDetector(t, &fakeClient{fallback: "{}"})
	if _, err := d.Analyze(context.Background(), &Message{Content: "   "}); err == nil {
		t.Error("Analyze() of empty content should fail")
	}
}

func TestAnalyzeDropsHallucinatedPatterns(t *testing.T) {
	client := &fakeClient{
		fallback: `{"matches": [
			{"pattern_name": "made_up_pattern", "confidence": 0.99},
			{"pattern_name": "phishing", "confidence": 0.7}
		], "summary": "s"}`,
	}
	d := newTestDetector(t, client)

	result, err := d.Analyze(context.Background(), &Message{Content: "verify your account"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.MatchedPatterns) != 1 || result.MatchedPatterns[0].PatternName != "phishing" {
		t.Errorf("MatchedPatterns = %+v", result.MatchedPatterns)
	}
	if len(result.Notes) != 1 || !strings.Contains(result.Notes[0], "made_up_pattern") {
		t.Errorf("Notes = %v", result.Notes)
	}
}

func TestAnalyzePropagatesErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			"upstream error",
			"", &UpstreamError{StatusCode: 503, Detail: "overloaded"},
			func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.StatusCode != 503 {
					t.Errorf("error = %v", err)
				}
				if !ue.Retryable() {
					t.Error("503 should be retryable")
				}
			},
		},
		{
			"transport error",
			"", &TransportError{Err: fmt.Errorf("connection refused")},
			func(t *testing.T, err error) {
				var te *TransportError
				if !errors.As(err, &te) {
					t.Errorf("error = %v", err)
				}
			},
		},
		{
			"format error",
			"I think this message looks fine to me.", nil,
			func(t *testing.T, err error) {
				var fe *ResponseFormatError
				if !errors.As(err, &fe) {
					t.Errorf("error = %v", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{fallback: tt.reply}
			if tt.err != nil {
				client.errs = map[string]error{"trigger": tt.err}
			}
			d := newTestDetector(t, client)
			_, err := d.Analyze(context.Background(), &Message{Content: "trigger"})
			if err == nil {
				t.Fatal("Analyze() should have failed")
			}
			tt.check(t, err)
		})
	}
}

func TestAnalyzeText(t *testing.T) {
	client := &fakeClient{fallback: `{"matches": [], "summary": "ok"}`}
	d := newTestDetector(t, client)
	result, err := d.AnalyzeText(context.Background(), "plain text message")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if result.IsScam {
		t.Error("IsScam = true for scripted clean reply")
	}
}

func TestAnalyzeBatchPositionalAlignment(t *testing.T) {
	client := &fakeClient{
		replies: map[string]string{
			"first message":  `{"matches": [], "summary": "first"}`,
			"second message": ``,
			"third message":  `{"matches": [{"pattern_name": "phishing", "confidence": 0.8}], "summary": "third"}`,
		},
		errs: map[string]error{"second message": &UpstreamError{StatusCode: 500, Detail: "boom"}},
	}
	d := newTestDetector(t, client)

	msgs := []Message{
		{Content: "first message"},
		{Content: "second message"},
		{Content: "third message"},
	}
	results, err := d.AnalyzeBatch(context.Background(), msgs, nil)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Err != nil || results[0].Result.Summary != "first" {
		t.Errorf("slot 0 = %+v", results[0])
	}
	var ue *UpstreamError
	if results[1].Result != nil || !errors.As(results[1].Err, &ue) {
		t.Errorf("slot 1 = %+v, want upstream error", results[1])
	}
	if results[2].Err != nil || !results[2].Result.IsScam {
		t.Errorf("slot 2 = %+v", results[2])
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	d := newTestDetector(t, &fakeClient{})
	results, err := d.AnalyzeBatch(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestAnalyzeBatchFailFast(t *testing.T) {
	client := &fakeClient{
		fallback: `{"matches": [], "summary": "ok"}`,
		errs:     map[string]error{"poison": &UpstreamError{StatusCode: 500, Detail: "boom"}},
	}
	d := newTestDetector(t, client)

	msgs := []Message{{Content: "poison"}, {Content: "one"}, {Content: "two"}}
	results, err := d.AnalyzeBatch(context.Background(), msgs, &BatchOptions{FailFast: true})
	if err == nil {
		t.Fatal("fail-fast batch should return an error")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Errorf("batch error = %v, want *UpstreamError", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d slots, want 3", len(results))
	}
}

func TestAnalyzeBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newTestDetector(t, &fakeClient{fallback: `{"matches": [], "summary": "ok"}`})
	results, err := d.AnalyzeBatch(ctx, []Message{{Content: "a"}, {Content: "b"}}, nil)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error = %v", err)
	}
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("slot %d has no error after cancellation", i)
		}
	}
}

func TestCatalogMutationAffectsLaterAnalyses(t *testing.T) {
	client := &fakeClient{
		fallback: `{"matches": [{"pattern_name": "custom_pattern", "confidence": 0.9}], "summary": "s"}`,
	}
	catalog, _ := NewPatternCatalog()
	d := NewScamDetector(client, catalog, DefaultRiskPolicy(), 1, zap.NewNop())

	// Before the pattern exists, the match is a hallucination and gets dropped.
	result, err := d.Analyze(context.Background(), &Message{Content: "msg"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.MatchedPatterns) != 0 {
		t.Errorf("match kept before pattern added: %+v", result.MatchedPatterns)
	}

	if err := d.AddPattern(ScamPattern{Name: "custom_pattern", Severity: RiskHigh}); err != nil {
		t.Fatalf("AddPattern() error = %v", err)
	}

	result, err = d.Analyze(context.Background(), &Message{Content: "msg"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.MatchedPatterns) != 1 {
		t.Errorf("match dropped after pattern added: %+v", result.MatchedPatterns)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("RiskLevel = %v, want critical", result.RiskLevel)
	}
}

func TestSetCompletionClientReturnsPrevious(t *testing.T) {
	first := &fakeClient{fallback: `{"matches": [], "summary": "first client"}`}
	second := &fakeClient{fallback: `{"matches": [], "summary": "second client"}`}
	d := newTestDetector(t, first)

	if prev := d.SetCompletionClient(second); prev != first {
		t.Error("SetCompletionClient() did not return the previous client")
	}
	result, err := d.AnalyzeText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if result.Summary != "second client" {
		t.Errorf("summary = %q, analysis did not use the swapped client", result.Summary)
	}
	if first.callCount() != 0 {
		t.Error("old client still receiving requests")
	}
}
