// Package output provides quote output formatting.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"relocation-quote/core/determinism"
	"relocation-quote/core/types"
	"relocation-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is the machine-readable output contract
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given quote
	Render(w io.Writer, q *types.QuoteBreakdown) error
}

// Registry holds formatters by format
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry with the given formatters
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

// DefaultRegistry returns a registry with the CLI and JSON formatters
func DefaultRegistry(showRecommendations, noColor bool) *Registry {
	return NewRegistry(
		&CLIFormatter{ShowRecommendations: showRecommendations, NoColor: noColor},
		&JSONFormatter{Indent: true},
	)
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q (available: %v)", format, r.Formats())
	}
	return f, nil
}

// Formats lists the registered formats in order
func (r *Registry) Formats() []Format {
	return determinism.SortedKeys(r.formatters)
}

// JSONFormatter renders the output contract document
type JSONFormatter struct {
	Indent bool
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the quote document as JSON
func (f *JSONFormatter) Render(w io.Writer, q *types.QuoteBreakdown) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewDocument(q)); err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	return nil
}
