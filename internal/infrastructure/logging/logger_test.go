package logging

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/wardlink/wardcall-core/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	cfgs := []config.LoggingConfig{
		{Level: "debug", Format: "text", Output: "stdout"},
		{Level: "info", Format: "json", Output: "stderr"},
		{Level: "error", Format: "json", File: config.FileLoggingConfig{
			Path:    filepath.Join(t.TempDir(), "wardcall.log"),
			MaxSize: 1,
		}},
	}

	for _, cfg := range cfgs {
		log := New(cfg, "test")
		if log == nil {
			t.Fatal("New returned nil")
		}
		log.Info("test message", "key", "value")
	}
}

func TestWithAddsAttributes(t *testing.T) {
	log := Default()
	child := log.With("component", "test")
	if child == nil || child.Logger == nil {
		t.Fatal("With returned nil logger")
	}
	// A derived logger must not share identity with the parent.
	if child == log {
		t.Error("With returned the same logger instance")
	}
}
