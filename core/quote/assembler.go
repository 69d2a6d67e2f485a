// Package quote assembles a complete priced quote from a job specification.
//
// Build is pure and synchronous: the same job and rate card always
// produce an identical QuoteBreakdown, and an Assembler may be shared
// between goroutines.
package quote

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"relocation-quote/core/determinism"
	"relocation-quote/core/discount"
	"relocation-quote/core/estimation"
	"relocation-quote/core/guards"
	"relocation-quote/core/pricing"
	"relocation-quote/core/recommendation"
	"relocation-quote/core/surcharge"
	"relocation-quote/core/types"
	"relocation-quote/internal/errors"
	"relocation-quote/internal/logging"
)

// Assembler builds quotes against a single rate card
type Assembler struct {
	cfg         *pricing.Config
	estimator   estimation.TimeEstimator
	surcharges  *surcharge.Detector
	discounts   *discount.Calculator
	suggestions *recommendation.Engine
	logger      *zap.Logger
	ids         *determinism.IDGenerator
	guard       *guards.QuoteGuard
}

// Option configures an Assembler
type Option func(*Assembler)

// WithEstimator replaces the throughput time estimator
func WithEstimator(e estimation.TimeEstimator) Option {
	return func(a *Assembler) {
		a.estimator = e
	}
}

// WithLogger sets the logger used for per-quote debug output
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		a.logger = l
	}
}

// New creates an assembler. cfg must already be validated.
func New(cfg *pricing.Config, opts ...Option) *Assembler {
	a := &Assembler{
		cfg:         cfg,
		estimator:   estimation.New(cfg),
		surcharges:  surcharge.NewDetector(cfg),
		discounts:   discount.NewCalculator(cfg),
		suggestions: recommendation.NewEngine(cfg),
		ids:         determinism.NewIDGenerator("quote"),
		guard:       guards.NewQuoteGuard(cfg),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Named("quote")
	}
	return a
}

// Config returns the rate card the assembler prices against
func (a *Assembler) Config() *pricing.Config {
	return a.cfg
}

// Build validates the job and prices it. A validation failure returns
// a TypeValidation error and no quote.
func (a *Assembler) Build(job *types.JobSpecification) (*types.QuoteBreakdown, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	ref, err := a.reference(job)
	if err != nil {
		return nil, err
	}

	hours := a.estimator.Estimate(job)
	if !finiteHours(hours) {
		return nil, errors.Validation(errors.FieldError{
			Field:   "volume_m3",
			Message: "job is too large to estimate",
		})
	}

	items := a.laborItems(job, hours)
	items = append(items, a.serviceItems(job, hours)...)

	mandatory := a.surcharges.Detect(job)
	items = append(items, surcharge.LineItems(mandatory)...)

	q := &types.QuoteBreakdown{
		Reference:       ref,
		EstimatedHours:  hours.TotalHours,
		TimeBreakdown:   hours.TimeBreakdown,
		LineItems:       items,
		Subtotal:        types.SumLineItems(items),
		Discounts:       a.discounts.Compute(items, job),
		Recommendations: a.suggestions.Generate(job, hours.TotalHours, mandatory),
	}
	q.TotalPrice = discount.ApplyTo(q.Subtotal, q.Discounts)
	q.Summary = Summarize(job, q)

	if err := a.guard.Check(q); err != nil {
		a.logger.Error("quote rejected", zap.String("reference", q.Reference), zap.Error(err))
		return nil, err
	}

	a.logger.Debug("quote built",
		zap.String("reference", q.Reference),
		zap.Float64("volume_m3", job.Volume),
		zap.Float64("hours", q.EstimatedHours),
		zap.String("subtotal", q.Subtotal.String()),
		zap.String("total", q.TotalPrice.String()),
		zap.Int("line_items", len(q.LineItems)),
		zap.Int("recommendations", len(q.Recommendations)),
	)
	return q, nil
}

// reference fingerprints the job together with the full rate card
func (a *Assembler) reference(job *types.JobSpecification) (string, error) {
	jobHash, err := determinism.HashJSON(job)
	if err != nil {
		return "", errors.Internal("failed to fingerprint job", err)
	}
	cardHash, err := determinism.HashJSON(a.cfg)
	if err != nil {
		return "", errors.Internal("failed to fingerprint rate card", err)
	}
	return "Q-" + string(a.ids.Generate(jobHash.Hex(), cardHash.Hex())), nil
}

// finiteHours reports whether every hour figure can be priced. Custom
// estimators are not bound by the job limits.
func finiteHours(b estimation.Breakdown) bool {
	for _, h := range []float64{b.TotalHours, b.PackingHours, b.CleaningHours, b.OnSiteHours()} {
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
			return false
		}
	}
	return true
}

// laborItems bills on-site hours for the team and the truck. Packing
// and cleaning hours are billed separately by serviceItems.
func (a *Assembler) laborItems(job *types.JobSpecification, hours estimation.Breakdown) []types.LineItem {
	onSite := hours.OnSiteHours()
	return []types.LineItem{
		types.NewLineItem("personnel",
			fmt.Sprintf("Movers (%d × %g h)", job.TeamSize, onSite),
			types.CategoryLabor, a.cfg.PersonnelRatePerHour, onSite*float64(job.TeamSize)),
		types.NewLineItem("truck",
			fmt.Sprintf("Truck (%g h)", onSite),
			types.CategoryVehicle, a.cfg.TruckRatePerHour, onSite),
	}
}

func (a *Assembler) serviceItems(job *types.JobSpecification, hours estimation.Breakdown) []types.LineItem {
	var items []types.LineItem
	if hours.PackingHours > 0 {
		items = append(items, types.NewLineItem("packing",
			fmt.Sprintf("Packing (%g h)", hours.PackingHours),
			types.CategoryLabor, a.cfg.PackingRatePerHour, hours.PackingHours))
	}
	if hours.CleaningHours > 0 {
		items = append(items, types.NewLineItem("cleaning",
			fmt.Sprintf("Move-out cleaning (%g h)", hours.CleaningHours),
			types.CategoryLabor, a.cfg.CleaningRatePerHour, hours.CleaningHours))
	}
	if job.WantsPiano() {
		items = append(items, types.NewLineItem("piano", "Piano handling",
			types.CategoryService, a.cfg.PianoFlatFee, 1))
	}
	if job.RequestedServices.Has(types.ServiceStorage) {
		items = append(items, types.NewLineItem("storage",
			fmt.Sprintf("Storage (%g m³)", job.Volume),
			types.CategoryService, a.cfg.StorageRatePerCubicMeter, job.Volume))
	}
	return items
}
