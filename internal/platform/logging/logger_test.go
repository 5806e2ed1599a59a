package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFieldsAsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).Named("odds")

	logger.WarnContext(context.Background(), "odds endpoint failed",
		"league", "nfl",
		"error", errors.New("boom"),
	)
	logger.Debug("filtered out by level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "odds endpoint failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["component"] != "odds" {
		t.Fatalf("unexpected component: %v", entry["component"])
	}
	if entry["league"] != "nfl" {
		t.Fatalf("unexpected league field: %v", entry["league"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if got := ParseLevel("WARNING"); got != LevelWarn {
		t.Fatalf("unexpected level: %s", got)
	}
	if got := ParseLevel("nonsense"); got != LevelInfo {
		t.Fatalf("expected info fallback, got %s", got)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("does not panic", "k", "v")
	if logger.Named("x") == nil {
		t.Fatalf("expected nop logger from nil receiver")
	}
}
