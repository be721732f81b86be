package logging

import (
	"log/slog"
	"testing"

	"github.com/nerrad567/usbgate/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{
			name: "json to stderr",
			cfg:  config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
		},
		{
			name: "text to stdout",
			cfg:  config.LoggingConfig{Level: "debug", Format: "text", Output: "stdout"},
		},
		{
			name: "unrecognised values fall back to defaults",
			cfg:  config.LoggingConfig{Level: "chatty", Format: "xml", Output: "syslog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if logger := New(tt.cfg, "1.0.0"); logger == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestWith(t *testing.T) {
	logger := Default()
	child := logger.With("component", "test")
	if child == nil || child == logger {
		t.Error("With() should return a new logger")
	}
}
