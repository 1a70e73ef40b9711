package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogSettings{Level: "info", Format: LogFormatText})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("committed", "hash", "abc")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("Expected debug record to be filtered at info level")
	}
	if !strings.Contains(output, "hash=abc") {
		t.Errorf("Expected 'hash=abc' in output, got %q", output)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogSettings{Level: "debug", Format: LogFormatJSON})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("saved file", "name", "a.txt")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected JSON record, got %q: %v", buf.String(), err)
	}
	if record["name"] != "a.txt" {
		t.Errorf("Expected name 'a.txt', got %v", record["name"])
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, LogSettings{Level: "verbose"}); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestLogWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := &Settings{
		Repo: "/srv/files",
		Log:  LogSettings{Level: "debug", Format: LogFormatText},
		Sign: SignSettings{Enabled: true, Key: "/keys/id_ed25519"},
	}
	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "/srv/files") {
		t.Error("Expected repo in log output")
	}
	if !strings.Contains(output, "/keys/id_ed25519") {
		t.Error("Expected signing key in log output")
	}
	if strings.Contains(output, "Config: user") {
		t.Error("Expected no user record when identity is unset")
	}
}
