// Package discount computes volume and RUT discounts.
//
// The two discounts are independent: both are computed from the
// undiscounted line items and neither reduces the base of the other.
package discount

import (
	"github.com/shopspring/decimal"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

// Calculator applies the rate card discount rules
type Calculator struct {
	cfg *pricing.Config
}

// NewCalculator creates a discount calculator
func NewCalculator(cfg *pricing.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives both discounts for the items of a job
func (c *Calculator) Compute(items []types.LineItem, job *types.JobSpecification) types.DiscountResult {
	subtotal := types.SumLineItems(items)

	var result types.DiscountResult
	if tier, ok := c.cfg.TierFor(job.Volume); ok {
		rate := decimal.NewFromFloat(tier.Rate)
		result.VolumeDiscountRate = rate
		result.VolumeDiscountAmount = subtotal.Mul(rate).Round(0)
		result.AppliedVolumeTierDescription = tier.Description()
	}

	result.RUTEligibleAmount = RUTEligible(items)
	result.RUTDiscountAmount = c.rut(result.RUTEligibleAmount)
	return result
}

// RUTEligible sums the totals of labor line items
func RUTEligible(items []types.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Category.RUTEligible() {
			sum = sum.Add(item.TotalPrice())
		}
	}
	return sum
}

// rut is floor(rate × eligible), capped. Flooring keeps the deduction
// within rate × eligible after rounding to whole SEK.
func (c *Calculator) rut(eligible decimal.Decimal) decimal.Decimal {
	amount := eligible.Mul(decimal.NewFromFloat(c.cfg.RUTDiscountRate)).Floor()
	if c.cfg.RUTMaxAmount > 0 {
		amount = decimal.Min(amount, decimal.NewFromFloat(c.cfg.RUTMaxAmount))
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// ApplyTo returns subtotal minus both discounts, never below zero
func ApplyTo(subtotal decimal.Decimal, d types.DiscountResult) decimal.Decimal {
	total := subtotal.Sub(d.Total())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
