package mdpage

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		logger, err := NewLogger(LogConfig{Level: "debug", Format: format, Name: "mdpage.test"})
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", format, err)
		}
		logger.Debug("logger.ready", "format", format)
	}
	if _, err := NewLogger(LogConfig{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := NewLogger(LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x", "k", "v")
}

func TestLogSafe(t *testing.T) {
	if got := logSafe("/short", 10); got != "/short" {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/" + strings.Repeat("a", 200)
	got := logSafe(long, maxLoggedPath)
	if w := ansi.PrintableRuneWidth(got); w > maxLoggedPath {
		t.Fatalf("truncated width %d exceeds %d", w, maxLoggedPath)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if got := logSafe(long, 1); got != "…" {
		t.Fatalf("unexpected tiny limit result: %q", got)
	}
}
