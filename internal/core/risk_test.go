package core

import "testing"

func TestRiskLevelLadder(t *testing.T) {
	tests := []struct {
		level RiskLevel
		up    RiskLevel
		down  RiskLevel
	}{
		{RiskNone, RiskLow, RiskLow},
		{RiskLow, RiskMedium, RiskLow},
		{RiskMedium, RiskHigh, RiskLow},
		{RiskHigh, RiskCritical, RiskMedium},
		{RiskCritical, RiskCritical, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.Escalate(); got != tt.up {
				t.Errorf("Escalate() = %v, want %v", got, tt.up)
			}
			if got := tt.level.Deescalate(); got != tt.down {
				t.Errorf("Deescalate() = %v, want %v", got, tt.down)
			}
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	isScam, level := DefaultRiskPolicy().Aggregate(nil, nil)
	if isScam || level != RiskNone {
		t.Errorf("Aggregate(nil) = (%v, %v), want (false, none)", isScam, level)
	}
}

func TestAggregate(t *testing.T) {
	severities := map[string]RiskLevel{
		"advance_fee":     RiskHigh,
		"fake_investment": RiskCritical,
		"phishing":        RiskHigh,
		"fake_job":        RiskMedium,
	}
	policy := DefaultRiskPolicy()

	tests := []struct {
		name      string
		matches   []PatternMatch
		wantScam  bool
		wantLevel RiskLevel
	}{
		{
			"high severity with very high confidence escalates to critical",
			[]PatternMatch{{PatternName: "advance_fee", Confidence: 0.92}},
			true, RiskCritical,
		},
		{
			"exact escalate threshold escalates",
			[]PatternMatch{{PatternName: "fake_job", Confidence: 0.85}},
			true, RiskHigh,
		},
		{
			"mid confidence keeps default severity",
			[]PatternMatch{{PatternName: "advance_fee", Confidence: 0.6}},
			true, RiskHigh,
		},
		{
			"low confidence de-escalates",
			[]PatternMatch{{PatternName: "advance_fee", Confidence: 0.2}},
			true, RiskMedium,
		},
		{
			"critical stays critical on escalation",
			[]PatternMatch{{PatternName: "fake_investment", Confidence: 0.95}},
			true, RiskCritical,
		},
		{
			"unknown pattern falls back to medium",
			[]PatternMatch{{PatternName: "not_in_map", Confidence: 0.5}},
			true, RiskMedium,
		},
		{
			"maximum wins across matches",
			[]PatternMatch{
				{PatternName: "fake_job", Confidence: 0.3},
				{PatternName: "phishing", Confidence: 0.9},
			},
			true, RiskCritical,
		},
		{
			"single weak match floors at low",
			[]PatternMatch{{PatternName: "fake_job", Confidence: 0.1}},
			true, RiskLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isScam, level := policy.Aggregate(tt.matches, severities)
			if isScam != tt.wantScam || level != tt.wantLevel {
				t.Errorf("Aggregate() = (%v, %v), want (%v, %v)", isScam, level, tt.wantScam, tt.wantLevel)
			}
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	severities := map[string]RiskLevel{"a": RiskLow, "b": RiskHigh, "c": RiskMedium}
	matches := []PatternMatch{
		{PatternName: "a", Confidence: 0.9},
		{PatternName: "b", Confidence: 0.5},
		{PatternName: "c", Confidence: 0.1},
	}
	policy := DefaultRiskPolicy()

	_, want := policy.Aggregate(matches, severities)
	permutations := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range permutations {
		shuffled := []PatternMatch{matches[perm[0]], matches[perm[1]], matches[perm[2]]}
		if _, got := policy.Aggregate(shuffled, severities); got != want {
			t.Errorf("permutation %v changed outcome: %v != %v", perm, got, want)
		}
	}
}

func TestAggregateCustomThresholds(t *testing.T) {
	policy := RiskPolicy{EscalateThreshold: 0.5, DeescalateThreshold: 0.2}
	severities := map[string]RiskLevel{"p": RiskMedium}

	_, level := policy.Aggregate([]PatternMatch{{PatternName: "p", Confidence: 0.5}}, severities)
	if level != RiskHigh {
		t.Errorf("custom escalate threshold ignored, level = %v", level)
	}
	_, level = policy.Aggregate([]PatternMatch{{PatternName: "p", Confidence: 0.1}}, severities)
	if level != RiskLow {
		t.Errorf("custom de-escalate threshold ignored, level = %v", level)
	}
}
