package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/internal/anomaly"
	"github.com/Alias1177/SeriesLens/internal/filter"
	"github.com/Alias1177/SeriesLens/models"
)

const (
	maxBodyBytes       = 10 << 20
	maxGeneratedPoints = 100_000
	shutdownTimeout    = 10 * time.Second
)

// Asker answers a question from a context passage
type Asker interface {
	Ask(ctx context.Context, question, passage string) (string, error)
}

// Server exposes the analysis pipeline over HTTP
type Server struct {
	cfg    *models.Config
	asker  Asker
	clock  func() time.Time
	engine *filter.Engine
	logger zerolog.Logger

	mu            sync.RWMutex
	latestContext string // context of the most recent analysis, "" before the first one
}

// Option configures a Server
type Option func(*Server)

// WithAsker sets the question-answering backend
func WithAsker(a Asker) Option {
	return func(s *Server) {
		s.asker = a
	}
}

// WithClock sets the reference time for generated series and filter windows
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New creates a server from configuration
func New(cfg *models.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		clock:  time.Now,
		logger: log.With().Str("component", "http_server").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = filter.NewEngine(filter.WithClock(s.clock))
	return s
}

// Handler builds the router with all middleware and CORS applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/filter", s.handleFilter).Methods(http.MethodPost)
	api.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	api.HandleFunc("/presets", s.handlePresets).Methods(http.MethodGet)

	router.Use(requestID)
	router.Use(accessLog(s.logger))
	router.Use(recovery(s.logger))

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	timeout := time.Duration(s.cfg.RequestTimeout) * time.Second
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.HTTPAddr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info().Msg("Server exited gracefully")
	return nil
}

func (s *Server) detector(windowSize int, multiplier float64) *anomaly.Detector {
	if windowSize == 0 {
		windowSize = s.cfg.WindowSize
	}
	if multiplier == 0 {
		multiplier = s.cfg.ThresholdMultiplier
	}
	return anomaly.NewDetector(windowSize, multiplier)
}

func (s *Server) setContext(passage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestContext = passage
}

func (s *Server) currentContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestContext
}
