package quote

import (
	"fmt"
	"strings"

	"relocation-quote/core/recommendation"
	"relocation-quote/core/types"
)

// Currency is the currency every amount is expressed in
const Currency = "SEK"

// Summarize renders a one-paragraph description of the quote
func Summarize(job *types.JobSpecification, q *types.QuoteBreakdown) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Move of %g m³ over %g km with %d movers, estimated at %g h",
		job.Volume, job.DistanceKm, job.TeamSize, q.EstimatedHours)
	if q.TimeBreakdown.UsedDurationHint {
		b.WriteString(" (predicted base duration)")
	}
	fmt.Fprintf(&b, ". Subtotal %s %s", q.Subtotal.StringFixed(0), Currency)

	if d := q.Discounts; !d.VolumeDiscountAmount.IsZero() {
		fmt.Fprintf(&b, ", volume discount %s -%s %s", d.AppliedVolumeTierDescription,
			d.VolumeDiscountAmount.StringFixed(0), Currency)
	}
	if d := q.Discounts; !d.RUTDiscountAmount.IsZero() {
		fmt.Fprintf(&b, ", RUT deduction -%s %s", d.RUTDiscountAmount.StringFixed(0), Currency)
	}
	fmt.Fprintf(&b, ". Total %s %s.", q.TotalPrice.StringFixed(0), Currency)

	optional := len(recommendation.Optional(q.Recommendations))
	if n := len(q.Recommendations) - optional; n > 0 {
		fmt.Fprintf(&b, " Includes %d mandatory surcharge(s).", n)
	}
	if optional > 0 {
		fmt.Fprintf(&b, " %d optional suggestion(s) available.", optional)
	}
	return b.String()
}
