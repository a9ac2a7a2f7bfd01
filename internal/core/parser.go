package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ParsedResponse is the validated form of one model reply.
type ParsedResponse struct {
	Matches []PatternMatch
	Summary string
	// Notes records non-fatal deviations: match entries that were dropped
	// and why. Surfaced on the result, never as an error.
	Notes []string
}

// rawMatch holds one candidate match before validation. Confidence stays raw
// so a missing or non-numeric value can be told apart from zero.
type rawMatch struct {
	PatternName string          `json:"pattern_name"`
	Confidence  json.RawMessage `json:"confidence"`
	Evidence    []string        `json:"evidence"`
	Explanation string          `json:"explanation"`
}

// rawEnvelope is the expected top-level reply shape. Some models answer with
// the older "matched_patterns" key; both are accepted. Entries stay raw so one
// malformed object cannot fail the decode of its siblings.
type rawEnvelope struct {
	Matches         []json.RawMessage `json:"matches"`
	MatchedPatterns []json.RawMessage `json:"matched_patterns"`
	Summary         string            `json:"summary"`
}

// ParseResponse turns raw model text into validated pattern matches.
//
// The top level must parse as JSON, if necessary after extracting the first
// balanced object or array span from surrounding prose or code fences; an
// unextractable reply is a *ResponseFormatError. Individual match entries are
// validated with graceful degradation: a bad entry is dropped with a note,
// never failing the whole reply. knownPatterns is the set of names the prompt
// was built from; matches naming anything else are hallucinations and dropped.
func ParseResponse(raw string, knownPatterns map[string]struct{}) (*ParsedResponse, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	candidates := env.Matches
	if candidates == nil {
		candidates = env.MatchedPatterns
	}

	out := &ParsedResponse{Summary: strings.TrimSpace(env.Summary)}
	for i, entry := range candidates {
		var m rawMatch
		if err := json.Unmarshal(entry, &m); err != nil {
			out.Notes = append(out.Notes,
				fmt.Sprintf("dropped match entry %d: malformed object", i+1))
			continue
		}
		conf, ok := decodeConfidence(m.Confidence)
		if !ok {
			out.Notes = append(out.Notes,
				fmt.Sprintf("dropped match %q: missing or non-numeric confidence", m.PatternName))
			continue
		}
		if _, known := knownPatterns[m.PatternName]; !known {
			out.Notes = append(out.Notes,
				fmt.Sprintf("dropped match %q: pattern not in catalog", m.PatternName))
			continue
		}
		out.Matches = append(out.Matches, PatternMatch{
			PatternName: m.PatternName,
			Confidence:  clamp01(conf),
			Evidence:    m.Evidence,
			Explanation: m.Explanation,
		})
	}

	// Callers rely on descending confidence regardless of model order.
	sort.SliceStable(out.Matches, func(i, j int) bool {
		return out.Matches[i].Confidence > out.Matches[j].Confidence
	})

	if out.Summary == "" {
		out.Summary = synthesizeSummary(out.Matches)
	}
	return out, nil
}

// decodeEnvelope parses the reply, repairing prose-wrapped JSON.
func decodeEnvelope(raw string) (*rawEnvelope, error) {
	trimmed := strings.TrimSpace(raw)

	if env, ok := tryDecode(trimmed); ok {
		return env, nil
	}

	// Models frequently wrap the object in prose or markdown fences. Retry on
	// the first balanced {...} or [...] span.
	if span, ok := firstBalancedSpan(trimmed); ok {
		if env, ok := tryDecode(span); ok {
			return env, nil
		}
	}

	return nil, &ResponseFormatError{
		Detail: "no parsable JSON object in model reply",
		Raw:    raw,
	}
}

// tryDecode attempts a strict parse of s as either the envelope object or a
// bare array of matches.
func tryDecode(s string) (*rawEnvelope, bool) {
	if len(s) == 0 {
		return nil, false
	}
	switch s[0] {
	case '{':
		var env rawEnvelope
		if err := json.Unmarshal([]byte(s), &env); err == nil {
			return &env, true
		}
	case '[':
		var matches []json.RawMessage
		if err := json.Unmarshal([]byte(s), &matches); err == nil {
			return &rawEnvelope{Matches: matches}, true
		}
	}
	return nil, false
}

// firstBalancedSpan returns the first balanced { } or [ ] substring,
// honoring JSON string and escape rules.
func firstBalancedSpan(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeConfidence accepts JSON numbers and numeric strings.
func decodeConfidence(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// synthesizeSummary builds a default summary when the model supplied none.
func synthesizeSummary(matches []PatternMatch) string {
	if len(matches) == 0 {
		return "No risk indicators found."
	}
	top := matches[0]
	return fmt.Sprintf("Matched pattern %q with confidence %.2f.", top.PatternName, top.Confidence)
}
