package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"relocation-quote/core/types"
	"relocation-quote/core/ui"
)

// CLIFormatter renders a quote as terminal tables
type CLIFormatter struct {
	ShowRecommendations bool
	NoColor             bool
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the quote tables
func (f *CLIFormatter) Render(w io.Writer, q *types.QuoteBreakdown) error {
	out := ui.NewWriter(w, f.NoColor)

	out.Header("Relocation Quote")

	items := out.NewTable("Item", "Category", "Unit price", "Qty", "Total").AlignRight(2, 3, 4)
	for _, item := range q.LineItems {
		items.AddRow(item.Label, string(item.Category), sek(item.UnitPrice), item.Quantity.String(), sek(item.TotalPrice()))
	}
	items.AddRow("", "", "", "", "")
	items.AddRow("Subtotal", "", "", "", sek(q.Subtotal))
	if d := q.Discounts; !d.VolumeDiscountAmount.IsZero() {
		items.AddRow("Volume discount "+d.AppliedVolumeTierDescription, "", "", "", "-"+sek(d.VolumeDiscountAmount))
	}
	if d := q.Discounts; !d.RUTDiscountAmount.IsZero() {
		items.AddRow("RUT deduction", "", "", "", "-"+sek(d.RUTDiscountAmount))
	}
	items.Render()
	out.Println("")

	box := out.NewTotalBox()
	box.Total = sek(q.TotalPrice)
	box.Subtotal = sek(q.Subtotal)
	box.Hours = fmt.Sprintf("%g h", q.EstimatedHours)
	box.Render()

	out.Dim("  reference %s", q.Reference)
	tb := q.TimeBreakdown
	out.Dim("  base %gh, floors %.2fh, packing %gh, cleaning %gh, special items %gh",
		tb.BaseHours, tb.FloorPenaltyHours, tb.PackingHours, tb.CleaningHours, tb.SpecialItemHours)
	if team := tb.Team; team.Rating != types.TeamOptimal {
		out.Dim("  team of %d is %s for this volume (suggested %d)", team.CurrentTeamSize, team.Rating, team.OptimalTeamSize)
	}
	if tb.UsedDurationHint {
		out.Info("Base duration taken from the prediction service")
	}

	if f.ShowRecommendations && len(q.Recommendations) > 0 {
		out.Header("Recommendations")
		recs := out.NewTable("", "Priority", "Item", "Price", "Reason").AlignRight(3)
		for _, r := range q.Recommendations {
			marker := " "
			if r.AutoAdd {
				marker = "+"
			}
			recs.AddRow(marker, string(r.Priority), r.Label, sek(r.TotalPrice()), r.Reasoning)
		}
		recs.Render()
		out.Dim("  + included in the total")
	}

	out.Println("")
	out.Println("%s", q.Summary)
	return nil
}

func sek(d decimal.Decimal) string {
	return d.StringFixed(0) + " kr"
}
