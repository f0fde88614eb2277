package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")
	logger.Debug("hidden")
	logger.Info("quest completed", "quest_id", 7)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "quest completed" || rec["component"] != "quest" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["timestamp"]; !ok {
		t.Fatalf("expected timestamp key, got %v", rec)
	}
	if rec["quest_id"] != float64(7) {
		t.Fatalf("expected quest_id 7, got %v", rec["quest_id"])
	}
}

func TestNewLoggerCreatesLogFile(t *testing.T) {
	home := t.TempDir()
	logger, closer, err := NewLogger(home, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, "logs", logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"hello"`)) {
		t.Fatalf("log file missing record: %s", data)
	}
}
