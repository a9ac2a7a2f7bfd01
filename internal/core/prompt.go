package core

import (
	"fmt"
	"strings"
)

// SystemPrompt fixes the model's role and the exact output contract. It is a
// constant so identical inputs always produce byte-identical requests.
const SystemPrompt = `You are a scam detection expert analyzing messages for potential scam patterns.

Your task is to carefully analyze the given message and determine if it matches any of the provided scam patterns.

Be thorough but avoid false positives. Only flag content that genuinely matches the scam patterns.
Consider context and nuance - legitimate messages may superficially resemble scams.

You must respond with a single valid JSON object in the following format:
{
    "matches": [
        {
            "pattern_name": "name of the matched pattern",
            "confidence": 0.0 to 1.0,
            "evidence": ["short quotes from the message that triggered this match"],
            "explanation": "why this pattern was matched"
        }
    ],
    "summary": "brief human-readable summary of the analysis"
}

Only include patterns the message actually supports. Omit patterns with no
textual support entirely; do not list them with near-zero confidence.

Guidelines for confidence scores:
- 0.0-0.3: Weak match, possibly coincidental
- 0.4-0.6: Moderate match, some indicators present
- 0.7-0.8: Strong match, multiple clear indicators
- 0.9-1.0: Very strong match, unmistakable pattern`

// BuildPatternsPrompt renders the catalog section of the user prompt.
// Pure and deterministic over the pattern slice.
func BuildPatternsPrompt(patterns []ScamPattern) string {
	if len(patterns) == 0 {
		return "No specific patterns defined. Use general scam detection heuristics."
	}
	var b strings.Builder
	b.WriteString("SCAM PATTERNS TO DETECT:\n")
	for i := range patterns {
		fmt.Fprintf(&b, "\n--- Pattern %d ---\n", i+1)
		b.WriteString(patterns[i].PromptSection())
		b.WriteString("\n")
	}
	return b.String()
}

// BuildAnalysisPrompt renders the complete user payload for one message
// against a snapshot of the catalog.
func BuildAnalysisPrompt(patterns []ScamPattern, msg *Message) string {
	var b strings.Builder
	b.WriteString(BuildPatternsPrompt(patterns))
	b.WriteString("\nMESSAGE TO ANALYZE:\n")
	b.WriteString(msg.AnalysisText())
	b.WriteString("\n\nAnalyze this message against the patterns above. Respond with JSON only.")
	return b.String()
}
