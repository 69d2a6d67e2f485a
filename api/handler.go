// Package api - HTTP handlers for quoting
// Handlers decode, delegate to the assembler and encode. All pricing
// logic lives in core packages.
package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"relocation-quote/core/input"
	"relocation-quote/core/output"
	"relocation-quote/core/quote"
	"relocation-quote/internal/errors"
)

// handleQuote handles POST /v1/quotes
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if s.settings.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.settings.MaxBodyBytes)
	}

	job, err := input.Parse(r.Body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	q, err := s.assembler.Build(job)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.writeJSON(w, output.NewDocument(q), http.StatusOK)
}

// handlePricing handles GET /v1/pricing
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, PricingResponse{
		Currency: quote.Currency,
		RateCard: s.assembler.Config(),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:           "healthy",
		Version:          s.version,
		RateCardVersion:  s.assembler.Config().Version,
		CheckedAtRFC3339: time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, VersionResponse{
		Version:    s.version,
		Engine:     "relocation-quote",
		APIVersion: "v1",
	}, http.StatusOK)
}

// writeDomainError maps typed errors to status codes
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := errors.As(err)
	if !ok {
		e = errors.Internal("unexpected failure", err)
	}

	status := http.StatusInternalServerError
	switch e.Type {
	case errors.TypeValidation, errors.TypeInput:
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("quote failed", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
	}

	message := e.Message
	if e.Type == errors.TypeInput && e.Cause != nil {
		message = e.Message + ": " + e.Cause.Error()
	}
	s.writeError(w, r, status, errorBody{
		Type:    string(e.Type),
		Message: message,
		Fields:  e.Fields,
	})
}
