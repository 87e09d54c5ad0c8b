package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
		{"disabled", zerolog.Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			lg := New(&bytes.Buffer{}, tt.level)
			if got := lg.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWritesFields(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "debug")
	lg.Debug().Str("input", "app.js").Msg("minifying")

	out := buf.String()
	if !strings.Contains(out, "minifying") || !strings.Contains(out, "input=app.js") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := Set(context.Background(), New(&buf, "info"))

	lg := Get(ctx)
	lg.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("logger from context did not write: %q", buf.String())
	}

	nop := Get(context.Background())
	if nop.GetLevel() != zerolog.Disabled {
		t.Errorf("Get without logger should be disabled, got %v", nop.GetLevel())
	}
}
