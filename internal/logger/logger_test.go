package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn, &buf)

	log.Debug("debug message", nil)
	log.Info("info message", nil)
	log.Warn("warn message", nil)
	log.Error("error message", nil, errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Error("messages below the minimum level must be discarded")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("messages at or above the minimum level must be written")
	}
}

func TestLogEntryIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Info("poll cycle complete", Fields{"matches": 4, "events": 2})

	var e struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if e.Level != "INFO" {
		t.Errorf("expected level INFO, got %q", e.Level)
	}
	if e.Message != "poll cycle complete" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if e.Fields["matches"].(float64) != 4 {
		t.Errorf("expected matches field 4, got %v", e.Fields["matches"])
	}
	if e.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestErrorFieldIncluded(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Error("fetch failed", Fields{"attempt": 3}, errors.New("connection refused"))

	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if e.Error != "connection refused" {
		t.Errorf("expected error field, got %q", e.Error)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"ERROR":   LevelError,
		"":        LevelInfo,
		"bananas": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
