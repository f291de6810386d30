package app

import (
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_OneLinePerRecord(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("server started", "addr", ":8080")
	log.Warn("slow query", "ms", 1200)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "server started") || !strings.Contains(lines[0], "addr=:8080") {
		t.Fatalf("first line malformed: %q", lines[0])
	}
	if !strings.Contains(lines[1], "WARN") || !strings.Contains(lines[1], "ms=1200") {
		t.Fatalf("second line malformed: %q", lines[1])
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, nil))

	log.With("svc", "students").WithGroup("http").Info("request", "status", 200)

	line := buf.String()
	if !strings.Contains(line, "svc=students") {
		t.Fatalf("missing pre-bound attr: %q", line)
	}
	if !strings.Contains(line, "http.status=200") {
		t.Fatalf("missing grouped attr: %q", line)
	}
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("dropped")
	log.Error("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("info record should have been filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("error record missing: %q", buf.String())
	}
}
