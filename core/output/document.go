package output

import (
	"github.com/shopspring/decimal"

	"relocation-quote/core/types"
)

// Document is the wire form of a quote. Amounts are plain JSON numbers
// in whole SEK.
type Document struct {
	Reference       string                `json:"reference"`
	EstimatedHours  float64               `json:"estimated_hours"`
	TimeBreakdown   types.TimeBreakdown   `json:"time_breakdown"`
	LineItems       []LineItemDocument    `json:"line_items"`
	Subtotal        float64               `json:"subtotal"`
	VolumeDiscount  VolumeDiscount        `json:"volume_discount"`
	RUTDiscount     RUTDiscount           `json:"rut_discount"`
	TotalPrice      float64               `json:"total_price"`
	Recommendations []RecommendationEntry `json:"recommendations"`
	Summary         string                `json:"summary"`
}

// LineItemDocument is a priced row
type LineItemDocument struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Category   string  `json:"category"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   float64 `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// VolumeDiscount is the applied volume tier
type VolumeDiscount struct {
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// RUTDiscount is the labor tax deduction
type RUTDiscount struct {
	Amount         float64 `json:"amount"`
	EligibleAmount float64 `json:"eligible_amount"`
}

// RecommendationEntry is a surcharge or suggestion
type RecommendationEntry struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Category   string  `json:"category"`
	Reasoning  string  `json:"reasoning"`
	Priority   string  `json:"priority"`
	AutoAdd    bool    `json:"auto_add"`
	TotalPrice float64 `json:"total_price"`
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// NewDocument converts a quote to its wire form
func NewDocument(q *types.QuoteBreakdown) *Document {
	doc := &Document{
		Reference:      q.Reference,
		EstimatedHours: q.EstimatedHours,
		TimeBreakdown:  q.TimeBreakdown,
		LineItems:      make([]LineItemDocument, 0, len(q.LineItems)),
		Subtotal:       num(q.Subtotal),
		VolumeDiscount: VolumeDiscount{
			Rate:        num(q.Discounts.VolumeDiscountRate),
			Amount:      num(q.Discounts.VolumeDiscountAmount),
			Description: q.Discounts.AppliedVolumeTierDescription,
		},
		RUTDiscount: RUTDiscount{
			Amount:         num(q.Discounts.RUTDiscountAmount),
			EligibleAmount: num(q.Discounts.RUTEligibleAmount),
		},
		TotalPrice:      num(q.TotalPrice),
		Recommendations: make([]RecommendationEntry, 0, len(q.Recommendations)),
		Summary:         q.Summary,
	}

	for _, item := range q.LineItems {
		doc.LineItems = append(doc.LineItems, LineItemDocument{
			ID:         item.ID,
			Label:      item.Label,
			Category:   string(item.Category),
			UnitPrice:  num(item.UnitPrice),
			Quantity:   num(item.Quantity),
			TotalPrice: num(item.TotalPrice()),
		})
	}
	for _, r := range q.Recommendations {
		doc.Recommendations = append(doc.Recommendations, RecommendationEntry{
			ID:         r.ID,
			Label:      r.Label,
			Category:   string(r.Category),
			Reasoning:  r.Reasoning,
			Priority:   string(r.Priority),
			AutoAdd:    r.AutoAdd,
			TotalPrice: num(r.TotalPrice()),
		})
	}
	return doc
}
