// Package surcharge detects mandatory location surcharges.
package surcharge

import (
	"fmt"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

// Detector emits auto-add surcharges from location facts
type Detector struct {
	cfg *pricing.Config
}

// NewDetector creates a detector over the rate card
func NewDetector(cfg *pricing.Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect evaluates each end independently, origin first. Per end the
// parking rule is emitted before the stairs or broken-elevator rule,
// which fixes line-item order.
func (d *Detector) Detect(job *types.JobSpecification) []types.Recommendation {
	var out []types.Recommendation
	for _, end := range types.BothEnds {
		if r, ok := d.parking(job, end); ok {
			out = append(out, r)
		}
		if r, ok := d.access(job, end); ok {
			out = append(out, r)
		}
	}
	return out
}

func (d *Detector) parking(job *types.JobSpecification, end types.End) (types.Recommendation, bool) {
	distance := job.ParkingDistanceMeters.Get(end)
	free := d.cfg.ParkingFreeMeters
	if distance <= free {
		return types.Recommendation{}, false
	}

	extra := distance - free
	return mandatory(
		types.NewLineItem("parking_"+string(end), fmt.Sprintf("Long carry at %s (%g m)", end.Label(), extra),
			types.CategorySurcharge, d.cfg.ParkingRatePerMeter, extra),
		fmt.Sprintf("Parking is %g m from the entrance at the %s; the first %g m are included, the remaining %g m are charged per meter.",
			distance, end.Label(), free, extra),
	), true
}

// access applies either the stairs fee or the broken-elevator fee, never both
func (d *Detector) access(job *types.JobSpecification, end types.End) (types.Recommendation, bool) {
	floor := job.Floors.Get(end)
	elevator := job.Elevator.Get(end)
	limit := d.cfg.ElevatorRequiredAboveFloor

	switch {
	case !elevator.Present() && floor > limit:
		extra := floor - limit
		return mandatory(
			types.NewLineItem("stairs_"+string(end), fmt.Sprintf("Stairs at %s (%s)", end.Label(), floorCount(extra)),
				types.CategorySurcharge, d.cfg.StairsFeePerFloor, float64(extra)),
			fmt.Sprintf("No elevator at the %s on floor %d; floors above %d are carried by stairs.",
				end.Label(), floor, limit),
		), true

	case elevator.Present() && !job.ElevatorHealthy.Get(end):
		return mandatory(
			types.NewLineItem("broken_elevator_"+string(end), fmt.Sprintf("Elevator out of service at %s", end.Label()),
				types.CategorySurcharge, d.cfg.BrokenElevatorFee, 1),
			fmt.Sprintf("The %s elevator at the %s is not in working order; goods are carried manually.",
				elevator, end.Label()),
		), true
	}
	return types.Recommendation{}, false
}

func mandatory(item types.LineItem, reasoning string) types.Recommendation {
	return types.Recommendation{
		LineItem:  item,
		Reasoning: reasoning,
		Priority:  types.PriorityHigh,
		AutoAdd:   true,
	}
}

// LineItems strips surcharges down to their line items
func LineItems(recs []types.Recommendation) []types.LineItem {
	items := make([]types.LineItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, r.LineItem)
	}
	return items
}

func floorCount(n int) string {
	if n == 1 {
		return "1 floor"
	}
	return fmt.Sprintf("%d floors", n)
}
