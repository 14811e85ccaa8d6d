package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/generation"
)

// Generator is the generation entry point the HTTP layer depends on.
type Generator interface {
	Generate(ctx context.Context, r answers.Record) *generation.Response
	FallbackFor(ctx context.Context, r answers.Record, cause error) *generation.Response
}

// Config holds HTTP server settings.
type Config struct {
	Port           int
	AllowedOrigins []string
	Version        string
}

// Server serves the generation API over HTTP.
type Server struct {
	cfg     Config
	gen     Generator
	storage *export.Storage
	log     *slog.Logger
}

// New creates the HTTP server. storage may be nil, which disables export publishing.
func New(cfg Config, gen Generator, storage *export.Storage, logger *slog.Logger) *Server {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Server{cfg: cfg, gen: gen, storage: storage, log: logger}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware(s.cfg.AllowedOrigins))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-prompts", s.handleGenerate).Methods("POST", "OPTIONS")
	api.HandleFunc("/export/{kind}", s.handleExport).Methods("POST", "OPTIONS")

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	return otelhttp.NewHandler(r, "adgenius-http")
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
