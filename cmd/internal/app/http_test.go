package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestApp(cfg Config) *App {
	return &App{
		cfg:     cfg,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: NewMetrics(),
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	a := newTestApp(Config{})
	rec := httptest.NewRecorder()
	a.handleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	t.Run("ready without db requirement", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(Config{})
		rec := httptest.NewRecorder()
		a.handleReadyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("not ready when db required but absent", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(Config{ReadinessRequireDB: true})
		rec := httptest.NewRecorder()
		a.handleReadyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})
}
