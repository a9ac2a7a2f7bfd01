package core

// RiskPolicy holds the confidence thresholds that shift a match's default
// severity one level in either direction.
type RiskPolicy struct {
	// EscalateThreshold escalates a match one level when confidence >= it.
	EscalateThreshold float64
	// DeescalateThreshold de-escalates one level when confidence < it.
	// De-escalation floors at low: any match at all keeps the risk above none.
	DeescalateThreshold float64
}

// DefaultRiskPolicy returns the standard escalation thresholds.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		EscalateThreshold:   0.85,
		DeescalateThreshold: 0.40,
	}
}

// Aggregate maps a set of validated matches to the overall verdict. Total and
// order-independent: permuting matches never changes the outcome. severities
// supplies each pattern's default severity by name; a match whose pattern is
// missing from it falls back to medium.
func (p RiskPolicy) Aggregate(matches []PatternMatch, severities map[string]RiskLevel) (isScam bool, level RiskLevel) {
	if len(matches) == 0 {
		return false, RiskNone
	}

	level = RiskNone
	for _, m := range matches {
		sev, ok := severities[m.PatternName]
		if !ok || sev == "" {
			sev = RiskMedium
		}
		switch {
		case m.Confidence >= p.EscalateThreshold:
			sev = sev.Escalate()
		case m.Confidence < p.DeescalateThreshold:
			sev = sev.Deescalate()
		}
		if sev.Rank() > level.Rank() {
			level = sev
		}
	}

	// A non-empty match set is never "none".
	if level == RiskNone {
		level = RiskLow
	}
	return true, level
}
