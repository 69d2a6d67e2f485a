// Package guards checks the invariants every priced quote must satisfy.
// A violation means the engine itself is broken, not the input.
package guards

import (
	"fmt"

	"github.com/shopspring/decimal"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
	"relocation-quote/internal/errors"
)

// Violation describes a broken quote invariant
type Violation struct {
	Invariant string
	Detail    string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Invariant, v.Detail)
}

// QuoteGuard verifies finished quotes against the rate card they were
// priced with
type QuoteGuard struct {
	cfg *pricing.Config
}

// NewQuoteGuard creates a guard
func NewQuoteGuard(cfg *pricing.Config) *QuoteGuard {
	return &QuoteGuard{cfg: cfg}
}

// Violations returns every broken invariant, or nil
func (g *QuoteGuard) Violations(q *types.QuoteBreakdown) []Violation {
	var out []Violation
	add := func(invariant, format string, args ...any) {
		out = append(out, Violation{Invariant: invariant, Detail: fmt.Sprintf(format, args...)})
	}

	if sum := types.SumLineItems(q.LineItems); !sum.Equal(q.Subtotal) {
		add("subtotal", "line items sum to %s, subtotal is %s", sum, q.Subtotal)
	}
	if q.TotalPrice.IsNegative() {
		add("total", "total %s is negative", q.TotalPrice)
	}
	if q.EstimatedHours < g.cfg.MinimumBillableHours {
		add("hours", "%g h is below the %g h minimum", q.EstimatedHours, g.cfg.MinimumBillableHours)
	}

	d := q.Discounts
	if d.VolumeDiscountAmount.IsNegative() || d.RUTDiscountAmount.IsNegative() {
		add("discount", "negative discount (volume %s, rut %s)", d.VolumeDiscountAmount, d.RUTDiscountAmount)
	}
	rutBound := d.RUTEligibleAmount.Mul(decimal.NewFromFloat(g.cfg.RUTDiscountRate))
	if d.RUTDiscountAmount.GreaterThan(rutBound) {
		add("rut", "deduction %s exceeds %s of eligible %s", d.RUTDiscountAmount, rutBound, d.RUTEligibleAmount)
	}
	if g.cfg.RUTMaxAmount > 0 && d.RUTDiscountAmount.GreaterThan(decimal.NewFromFloat(g.cfg.RUTMaxAmount)) {
		add("rut", "deduction %s exceeds the %g cap", d.RUTDiscountAmount, g.cfg.RUTMaxAmount)
	}

	seenOptional := false
	for _, r := range q.Recommendations {
		if !r.AutoAdd {
			seenOptional = true
			continue
		}
		if seenOptional {
			add("ordering", "mandatory %s follows an optional suggestion", r.ID)
		}
	}
	return out
}

// Check returns an internal error listing the violations, or nil
func (g *QuoteGuard) Check(q *types.QuoteBreakdown) error {
	v := g.Violations(q)
	if len(v) == 0 {
		return nil
	}
	return errors.Newf(errors.TypeInternal, "quote invariant violated: %v", v)
}
