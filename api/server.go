// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine invocation, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"relocation-quote/core/quote"
	"relocation-quote/internal/config"
	"relocation-quote/internal/logging"
)

// Server is the API server
type Server struct {
	assembler *quote.Assembler
	router    chi.Router
	version   string
	settings  config.ServerConfig
	logger    *zap.Logger
}

// NewServer creates a server over a ready assembler
func NewServer(assembler *quote.Assembler, version string, settings config.ServerConfig) *Server {
	s := &Server{
		assembler: assembler,
		router:    chi.NewRouter(),
		version:   version,
		settings:  settings,
		logger:    logging.Named("api"),
	}
	s.registerRoutes()
	return s
}

// WithLogger replaces the request logger
func (s *Server) WithLogger(l *zap.Logger) *Server {
	s.logger = l
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes", s.handleQuote)
		r.Get("/pricing", s.handlePricing)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, errorBody{Type: "NOT_FOUND", Message: "no route for " + r.Method + " " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, errorBody{Type: "METHOD_NOT_ALLOWED", Message: r.Method + " is not allowed on " + r.URL.Path})
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.settings.Addr,
		Handler:      s,
		ReadTimeout:  time.Duration(s.settings.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.settings.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("version", s.version),
			zap.String("rate_card", s.assembler.Config().Version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, body errorBody) {
	body.RequestID = RequestIDFrom(r.Context())
	s.writeJSON(w, errorResponse{Error: body}, status)
}
