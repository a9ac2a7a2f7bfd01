package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor prepares untrusted message text before it is embedded into
// an analysis prompt.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateMessage caps message content at maxSize bytes without splitting a
// UTF-8 sequence. maxSize <= 0 means unlimited.
func (tp *TextProcessor) TruncateMessage(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Message content truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + "\n[... content truncated due to size limits ...]"
}

// SanitizeUTF8 strips invalid UTF-8 sequences from message content so the
// request body always encodes cleanly.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Message content sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// Prepare sanitizes and truncates message content in one step.
func (tp *TextProcessor) Prepare(text string, maxSize int) string {
	return tp.TruncateMessage(tp.SanitizeUTF8(text), maxSize)
}
