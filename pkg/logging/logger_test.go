package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{
		Level:  LevelInfo,
		Output: &buf,
	})

	logger.Info().Str("endpoint", "/api/net").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, `"endpoint":"/api/net"`) {
		t.Errorf("Expected JSON field in output, got: %s", out)
	}
	if !strings.Contains(out, `"message":"test message"`) {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{
		Level:  LevelWarn,
		Output: &buf,
	})

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("Messages below warn level should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("Warn message missing from output: %s", out)
	}
}

func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelDebug, Output: &buf})

	logger := NewLogger("pagination")
	logger.Info().Msg("component test")

	if !strings.Contains(buf.String(), `"component":"pagination"`) {
		t.Errorf("Expected component field, got: %s", buf.String())
	}
}
