package core

import (
	"strings"
	"testing"
)

func TestBuildPatternsPromptEmpty(t *testing.T) {
	got := BuildPatternsPrompt(nil)
	if !strings.Contains(got, "general scam detection heuristics") {
		t.Errorf("empty-catalog prompt = %q", got)
	}
}

func TestBuildPatternsPromptSections(t *testing.T) {
	patterns := []ScamPattern{
		{
			Name:        "advance_fee",
			Description: "Requests an upfront payment to unlock a larger payout",
			Indicators:  []string{"upfront fee", "processing charge"},
			Severity:    RiskHigh,
			Examples:    []string{"Pay $500 to release your winnings"},
		},
		{Name: "phishing", Description: "Credential harvesting", Severity: RiskHigh},
	}

	got := BuildPatternsPrompt(patterns)

	for _, want := range []string{
		"SCAM PATTERNS TO DETECT:",
		"--- Pattern 1 ---",
		"--- Pattern 2 ---",
		"Pattern: advance_fee",
		"Indicators:",
		"  - upfront fee",
		`  - "Pay $500 to release your winnings"`,
		"Severity: high",
		"Pattern: phishing",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, got)
		}
	}
}

func TestBuildAnalysisPromptIncludesMessageFields(t *testing.T) {
	msg := &Message{Content: "send gift cards now", Title: "urgent", Author: "stranger42"}
	got := BuildAnalysisPrompt(nil, msg)

	for _, want := range []string{
		"MESSAGE TO ANALYZE:",
		"Title: urgent",
		"Author: stranger42",
		"Content: send gift cards now",
		"Respond with JSON only.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAnalysisPromptOmitsEmptyFields(t *testing.T) {
	got := BuildAnalysisPrompt(nil, &Message{Content: "hello"})
	if strings.Contains(got, "Title:") || strings.Contains(got, "Author:") {
		t.Errorf("prompt should omit empty title/author:\n%s", got)
	}
}

func TestBuildAnalysisPromptDeterministic(t *testing.T) {
	patterns := CommonPatterns()
	msg := &Message{Content: "wire me the deposit", Title: "great deal"}

	first := BuildAnalysisPrompt(patterns, msg)
	for i := 0; i < 5; i++ {
		if got := BuildAnalysisPrompt(patterns, msg); got != first {
			t.Fatal("identical inputs produced different prompts")
		}
	}
}

func TestPatternCategoryAccessors(t *testing.T) {
	all := make(map[string]struct{})
	for _, p := range CommonPatterns() {
		all[p.Name] = struct{}{}
	}

	tests := []struct {
		name     string
		patterns []ScamPattern
		want     []string
	}{
		{"financial", FinancialPatterns(), []string{"advance_fee", "crypto_pump_dump", "fake_investment"}},
		{"marketplace", MarketplacePatterns(), []string{"fake_buyer", "fake_seller"}},
		{"employment", EmploymentPatterns(), []string{"fake_job", "money_mule"}},
		{"tech", TechPatterns(), []string{"tech_support", "phishing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.patterns) != len(tt.want) {
				t.Fatalf("got %d patterns, want %d", len(tt.patterns), len(tt.want))
			}
			for i, p := range tt.patterns {
				if p.Name != tt.want[i] {
					t.Errorf("pattern %d = %q, want %q", i, p.Name, tt.want[i])
				}
				if _, ok := all[p.Name]; !ok {
					t.Errorf("category pattern %q not in the full library", p.Name)
				}
			}
		})
	}
}

func TestCommonPatternsAreValid(t *testing.T) {
	patterns := CommonPatterns()
	if len(patterns) != 10 {
		t.Errorf("CommonPatterns() returned %d patterns, want 10", len(patterns))
	}
	seen := make(map[string]struct{})
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			t.Errorf("pattern %q invalid: %v", p.Name, err)
		}
		if _, dup := seen[p.Name]; dup {
			t.Errorf("duplicate built-in pattern %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
}
