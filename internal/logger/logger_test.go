package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := New(level, "production")
		if err != nil {
			t.Fatalf("New(%q) failed: %v", level, err)
		}
		if !log.Core().Enabled(mustLevel(t, level)) {
			t.Errorf("Expected %s to be enabled", level)
		}
	}

	if _, err := New("loud", "production"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func mustLevel(t *testing.T, level string) zapcore.Level {
	t.Helper()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		t.Fatalf("ParseLevel(%q): %v", level, err)
	}
	return lvl
}
