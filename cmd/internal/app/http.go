package app

import (
	"net/http"
	"os"

	studentapi "studentfees/cmd/internal/students/api"
)

// registerHTTP mounts every route the server exposes: operational endpoints,
// the students API and an optional static frontend.
func (a *App) registerHTTP(mux *http.ServeMux, students *studentapi.Handler) {
	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.Handle("/metrics", a.metrics.Handler())

	students.Register(mux)

	if dir := a.cfg.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			mux.Handle("/", http.FileServer(http.Dir(dir)))
			a.log.Info("static.serve", "dir", dir)
		}
	}
}

// handleHealthz is a pure liveness probe: the process is up.
func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleReadyz reports readiness to take traffic. When configured to require
// the database it fails while MongoDB is unreachable.
func (a *App) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.cfg.ReadinessRequireDB {
		if err := PingDB(r.Context(), a.mongo); err != nil {
			a.log.Warn("readyz.db", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db unavailable\n"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready\n"))
}
