package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		debug bool
		want  zapcore.Level
	}{
		{"", false, zapcore.InfoLevel},
		{"warn", false, zapcore.WarnLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, c := range cases {
		l, err := New(c.level, c.debug)
		if err != nil {
			t.Fatalf("%q: %v", c.level, err)
		}
		if !l.Core().Enabled(c.want) {
			t.Errorf("%q debug=%v: %v not enabled", c.level, c.debug, c.want)
		}
		if c.want > zapcore.DebugLevel && l.Core().Enabled(c.want-1) {
			t.Errorf("%q: %v should be disabled", c.level, c.want-1)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatalf("expected error")
	}
}
