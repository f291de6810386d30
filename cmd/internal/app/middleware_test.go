package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a request id in the context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Fatalf("header id = %q, context id = %q", got, seen)
	}
	if len(seen) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", seen)
	}
}

func TestWithRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	h := WithRequestID(okHandler())

	ids := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		ids[rec.Header().Get("X-Request-Id")] = true
	}
	if len(ids) != 10 {
		t.Fatalf("expected 10 distinct ids, got %d", len(ids))
	}
}

func TestWithRequestLogging_CapturesStatus(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), log)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	line := buf.String()
	if !strings.Contains(line, `"status":418`) {
		t.Fatalf("log line missing status: %s", line)
	}
	if !strings.Contains(line, `"path":"/brew"`) {
		t.Fatalf("log line missing path: %s", line)
	}
	if !strings.Contains(line, `"result":"client_error"`) {
		t.Fatalf("log line missing result: %s", line)
	}
}

func TestWithRequestLogging_DefaultStatusIs200(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	}), log)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("log line missing implicit 200: %s", buf.String())
	}
}

func TestRequestLogMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  slog.Level
		result string
	}{
		{200, slog.LevelInfo, "success"},
		{302, slog.LevelInfo, "redirect"},
		{404, slog.LevelWarn, "client_error"},
		{500, slog.LevelError, "server_error"},
	}

	for _, tc := range tests {
		level, result := requestLogMeta(tc.status)
		if level != tc.level || result != tc.result {
			t.Errorf("requestLogMeta(%d) = (%v, %q), want (%v, %q)",
				tc.status, level, result, tc.level, tc.result)
		}
	}
}

func TestWithCORS(t *testing.T) {
	t.Parallel()

	const origin = "http://localhost:5173"
	h := WithCORS(okHandler(), origin)

	t.Run("allowed origin gets headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Fatalf("allow-origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Fatalf("allow-credentials = %q", got)
		}
	})

	t.Run("preflight answered without reaching handler", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("preflight status = %d, want 204", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Fatal("preflight missing allow-methods")
		}
		if body, _ := io.ReadAll(rec.Body); len(body) != 0 {
			t.Fatalf("preflight wrote a body: %q", body)
		}
	})

	t.Run("other origin refused", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("no origin header passes through", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Fatal("same-origin request should not get CORS headers")
		}
	})

	t.Run("empty config disables middleware", func(t *testing.T) {
		t.Parallel()

		disabled := WithCORS(okHandler(), "")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://anything.example")
		rec := httptest.NewRecorder()
		disabled.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
