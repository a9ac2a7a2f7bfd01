package core

import (
	"fmt"
	"strings"
	"time"
)

// RiskLevel classifies the overall severity of a detection.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskOrder maps each level to its position on the escalation ladder.
var riskOrder = map[RiskLevel]int{
	RiskNone:     0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// ParseRiskLevel parses a risk level string, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := riskOrder[level]; !ok {
		return RiskNone, fmt.Errorf("unknown risk level %q", s)
	}
	return level, nil
}

// Rank returns the level's position on the escalation ladder (none=0 .. critical=4).
func (r RiskLevel) Rank() int {
	return riskOrder[r]
}

// Escalate returns the next level up, capped at critical.
func (r RiskLevel) Escalate() RiskLevel {
	switch r {
	case RiskNone:
		return RiskLow
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Deescalate returns the next level down, floored at low. A match that exists
// at all never drops to none.
func (r RiskLevel) Deescalate() RiskLevel {
	switch r {
	case RiskCritical:
		return RiskHigh
	case RiskHigh:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Message is a piece of free text (forum post, DM) submitted for analysis.
// Metadata is carried through untouched and never interpreted.
type Message struct {
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Author   string         `json:"author,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AnalysisText renders the message for embedding into the analysis prompt.
func (m *Message) AnalysisText() string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, "Title: "+m.Title)
	}
	if m.Author != "" {
		parts = append(parts, "Author: "+m.Author)
	}
	parts = append(parts, "Content: "+m.Content)
	return strings.Join(parts, "\n")
}

// Validate checks the message is analyzable.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("message content must not be empty")
	}
	return nil
}

// ScamPattern is a plain-English description of one scam modus operandi.
// Patterns are described naturally so the LLM can understand and match them
// against message content.
type ScamPattern struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Indicators  []string  `json:"indicators,omitempty"`
	Severity    RiskLevel `json:"severity"`
	Examples    []string  `json:"examples,omitempty"`
}

// PromptSection renders the pattern as a section of the analysis prompt.
func (p *ScamPattern) PromptSection() string {
	var b strings.Builder
	b.WriteString("Pattern: " + p.Name + "\n")
	b.WriteString("Description: " + strings.TrimSpace(p.Description))
	if len(p.Indicators) > 0 {
		b.WriteString("\nIndicators:")
		for _, ind := range p.Indicators {
			b.WriteString("\n  - " + ind)
		}
	}
	if len(p.Examples) > 0 {
		b.WriteString("\nExamples:")
		for _, ex := range p.Examples {
			b.WriteString("\n  - \"" + ex + "\"")
		}
	}
	b.WriteString("\nSeverity: " + string(p.Severity))
	return b.String()
}

// Validate checks the pattern is usable in a catalog.
func (p *ScamPattern) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pattern name must not be empty")
	}
	if p.Severity != "" {
		if _, ok := riskOrder[p.Severity]; !ok {
			return fmt.Errorf("pattern %q: unknown severity %q", p.Name, p.Severity)
		}
	}
	return nil
}

// PatternMatch is a model-asserted finding that one pattern applies to a
// message. Produced only by the response parser; never built by callers.
type PatternMatch struct {
	PatternName string   `json:"pattern_name"`
	Confidence  float64  `json:"confidence"`
	Evidence    []string `json:"evidence,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// DetectionResult is the complete outcome of analyzing one message.
type DetectionResult struct {
	ID              string         `json:"id"`
	IsScam          bool           `json:"is_scam"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	MatchedPatterns []PatternMatch `json:"matched_patterns"`
	Summary         string         `json:"summary"`
	Notes           []string       `json:"notes,omitempty"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
	ModelUsed       string         `json:"model_used,omitempty"`
	RawResponse     string         `json:"-"`
}

// HighestConfidenceMatch returns the match with maximum confidence, or nil
// if nothing matched. Matches are kept sorted by descending confidence, so
// this is the first entry.
func (r *DetectionResult) HighestConfidenceMatch() *PatternMatch {
	if len(r.MatchedPatterns) == 0 {
		return nil
	}
	return &r.MatchedPatterns[0]
}
