package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncateMessage(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("short text unchanged", func(t *testing.T) {
		if got := tp.TruncateMessage("hello", 100); got != "hello" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unlimited when maxSize is zero", func(t *testing.T) {
		long := strings.Repeat("a", 10000)
		if got := tp.TruncateMessage(long, 0); got != long {
			t.Error("zero maxSize should not truncate")
		}
	})

	t.Run("truncates with marker", func(t *testing.T) {
		got := tp.TruncateMessage(strings.Repeat("a", 100), 10)
		if !strings.HasPrefix(got, strings.Repeat("a", 10)) {
			t.Errorf("got %q", got)
		}
		if !strings.Contains(got, "content truncated") {
			t.Errorf("missing truncation marker: %q", got)
		}
	})

	t.Run("does not split multibyte runes", func(t *testing.T) {
		// "héllo": cutting at byte 2 lands inside the two-byte é.
		got := tp.TruncateMessage("héllo", 2)
		if !utf8.ValidString(got) {
			t.Errorf("truncated text is not valid UTF-8: %q", got)
		}
	})
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("valid text unchanged", func(t *testing.T) {
		in := "héllo wörld"
		if got := tp.SanitizeUTF8(in); got != in {
			t.Errorf("got %q", got)
		}
	})

	t.Run("strips invalid bytes", func(t *testing.T) {
		in := "hel\xfflo"
		got := tp.SanitizeUTF8(in)
		if !utf8.ValidString(got) {
			t.Errorf("still invalid: %q", got)
		}
		if got != "hello" {
			t.Errorf("got %q, want %q", got, "hello")
		}
	})
}

func TestPrepare(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	got := tp.Prepare("bad\xffbyte "+strings.Repeat("x", 50), 20)
	if !utf8.ValidString(got) {
		t.Errorf("prepared text invalid: %q", got)
	}
	if !strings.Contains(got, "content truncated") {
		t.Errorf("missing truncation marker: %q", got)
	}
}
