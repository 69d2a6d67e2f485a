// Package api - API types
// The quote request and response bodies are core/input.QuoteRequest and
// core/output.Document; this file holds the envelope types around them.
package api

import (
	"relocation-quote/core/pricing"
	"relocation-quote/internal/errors"
)

// errorResponse wraps every non-2xx body
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Type      string              `json:"type"`
	Message   string              `json:"message"`
	Fields    []errors.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	RateCardVersion  string `json:"rate_card_version"`
	CheckedAtRFC3339 string `json:"checked_at"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}

// PricingResponse is returned by GET /v1/pricing
type PricingResponse struct {
	Currency string          `json:"currency"`
	RateCard *pricing.Config `json:"rate_card"`
}
