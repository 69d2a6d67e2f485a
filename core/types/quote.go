// Package types - Quote output types
package types

import "github.com/shopspring/decimal"

// Category classifies a line item
type Category string

const (
	CategoryLabor     Category = "labor"
	CategoryVehicle   Category = "vehicle"
	CategorySurcharge Category = "surcharge"
	CategoryMaterial  Category = "material"
	CategoryService   Category = "service"
)

// RUTEligible reports whether the category counts toward the RUT deduction.
// Only labor (personnel, packing, cleaning) qualifies.
func (c Category) RUTEligible() bool {
	return c == CategoryLabor
}

// LineItem is a single priced row of a quote
type LineItem struct {
	// ID is a stable machine identifier (e.g. "parking_from")
	ID string `json:"id"`

	// Label is a human-readable label
	Label string `json:"label"`

	Category Category `json:"category"`

	// UnitPrice is the SEK price per unit
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Quantity is the number of units (hours, meters, pieces)
	Quantity decimal.Decimal `json:"quantity"`
}

// NewLineItem creates a line item from float inputs
func NewLineItem(id, label string, category Category, unitPrice, quantity float64) LineItem {
	return LineItem{
		ID:        id,
		Label:     label,
		Category:  category,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Quantity:  decimal.NewFromFloat(quantity),
	}
}

// TotalPrice is UnitPrice × Quantity rounded to a whole SEK.
// It is derived on every call and never stored.
func (l LineItem) TotalPrice() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity).Round(0)
}

// Priority ranks a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns high=3, medium=2, low=1, anything else 0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Recommendation is a line item with a justification.
// AutoAdd marks a mandatory surcharge rather than an optional suggestion.
type Recommendation struct {
	LineItem
	Reasoning string   `json:"reasoning"`
	Priority  Priority `json:"priority"`
	AutoAdd   bool     `json:"auto_add"`
}

// DiscountResult holds the independent volume and RUT discounts
type DiscountResult struct {
	// VolumeDiscountRate is the selected tier rate (0 when no tier applies)
	VolumeDiscountRate decimal.Decimal `json:"volume_discount_rate"`

	VolumeDiscountAmount decimal.Decimal `json:"volume_discount_amount"`

	AppliedVolumeTierDescription string `json:"applied_volume_tier_description"`

	// RUTEligibleAmount is the labor subtotal the deduction was computed on
	RUTEligibleAmount decimal.Decimal `json:"rut_eligible_amount"`

	RUTDiscountAmount decimal.Decimal `json:"rut_discount_amount"`
}

// Total returns the combined discount amount
func (d DiscountResult) Total() decimal.Decimal {
	return d.VolumeDiscountAmount.Add(d.RUTDiscountAmount)
}

// TimeBreakdown explains how the estimated hours were derived
type TimeBreakdown struct {
	BaseHours         float64 `json:"base_hours"`
	FloorPenaltyHours float64 `json:"floor_penalty_hours"`
	PackingHours      float64 `json:"packing_hours"`
	CleaningHours     float64 `json:"cleaning_hours"`
	SpecialItemHours  float64 `json:"special_item_hours"`
	UsedDurationHint  bool    `json:"used_duration_hint"`

	Team TeamAssessment `json:"team"`
}

// TeamRating grades the requested team size against the suggested one
type TeamRating string

const (
	TeamOptimal    TeamRating = "optimal"
	TeamGood       TeamRating = "good"
	TeamSuboptimal TeamRating = "suboptimal"
)

// TeamAssessment compares the requested team with the size suggested
// for the job volume. It is advisory and never changes the hours.
type TeamAssessment struct {
	CurrentTeamSize int        `json:"current_team_size"`
	OptimalTeamSize int        `json:"optimal_team_size"`
	Rating          TeamRating `json:"rating"`
}

// QuoteBreakdown is the complete priced quote
type QuoteBreakdown struct {
	// Reference is derived from the job and rate card; identical input
	// always yields the same reference
	Reference string `json:"reference"`

	EstimatedHours float64       `json:"estimated_hours"`
	TimeBreakdown  TimeBreakdown `json:"time_breakdown"`

	// LineItems are in computation order
	LineItems []LineItem `json:"line_items"`

	// Subtotal is the sum of line item totals before discounts
	Subtotal decimal.Decimal `json:"subtotal"`

	Discounts DiscountResult `json:"discounts"`

	// TotalPrice is Subtotal minus discounts, never below zero
	TotalPrice decimal.Decimal `json:"total_price"`

	// Recommendations are sorted mandatory first, then by priority and price
	Recommendations []Recommendation `json:"recommendations"`

	Summary string `json:"summary"`
}

// SumLineItems returns the sum of item totals
func SumLineItems(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}
