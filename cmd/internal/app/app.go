package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	studentapi "studentfees/cmd/internal/students/api"
	"studentfees/cmd/internal/students/session"
	"studentfees/cmd/security/password"
	"studentfees/cmd/student"
)

const shutdownTimeout = 10 * time.Second

// App wires configuration, storage, the session service and the HTTP server
// into one runnable unit.
type App struct {
	cfg Config
	log Logger

	mongo    *mongo.Client // nil when running on the in-memory store
	sessions *session.Service
	metrics  *Metrics

	server *http.Server
}

// New builds the application from environment configuration. With
// STUDENTS_MONGODB_URI set it connects to MongoDB; otherwise it falls back to
// the in-memory store, which is fine for development and tests but loses all
// data on restart.
func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()
	log := NewLogger(cfg.LogLevel, cfg.LogFormat)

	a := &App{cfg: cfg, log: log}

	var store student.Store
	if cfg.MongoURI != "" {
		client, err := NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongo = client

		ms, err := student.NewMongoStore(ctx, client, student.WithDatabase(cfg.DBName))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		store = ms
		log.Info("storage.mongo", "db", cfg.DBName)
	} else {
		if cfg.Production() {
			return nil, errors.New("STUDENTS_MONGODB_URI is required in production")
		}
		store = student.NewMemoryStore()
		log.Warn("storage.memory", "note", "data is lost on restart")
	}

	sessCfg, err := session.LoadConfigFromEnv(cfg.Production())
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	tokens, err := session.NewTokenManager(sessCfg)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	hasher := password.NewHasher(cfg.HashWorkers)
	a.sessions = session.NewService(sessCfg, store, tokens, hasher)
	a.metrics = NewMetrics()

	apiCfg := studentapi.LoadConfigFromEnv()
	handler := studentapi.NewHandler(log, apiCfg, a.sessions)

	mux := http.NewServeMux()
	a.registerHTTP(mux, handler)

	a.server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.middleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	return a, nil
}

// middleware applies the outer handler chain: request id first so every later
// stage can log it, then metrics, logging and CORS.
func (a *App) middleware(next http.Handler) http.Handler {
	h := WithCORS(next, a.cfg.CORSOrigin)
	h = WithRequestLogging(h, a.log)
	h = a.metrics.WithMetrics(h)
	h = WithRequestID(h)
	return h
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http.listen", "addr", a.server.Addr, "env", a.cfg.Env)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		a.closeMongo()
		return err
	case <-ctx.Done():
	}

	a.log.Info("http.shutdown")

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutCtx)
	a.closeMongo()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) closeMongo() {
	if a.mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.log.Error("mongo.disconnect", "error", err)
	}
}
