package surcharge

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

func baseJob() *types.JobSpecification {
	return &types.JobSpecification{
		Volume:            24,
		DistanceKm:        10,
		TeamSize:          2,
		PropertyType:      types.PropertyApartment,
		RequestedServices: types.NewServiceSet(types.ServiceMoving),
	}
}

func ids(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestDetectScenario(t *testing.T) {
	d := NewDetector(pricing.Default())

	job := baseJob()
	job.Floors = types.Ends[int]{From: 3, To: 0}
	job.Elevator = types.Ends[types.Elevator]{From: types.ElevatorNone, To: types.ElevatorBig}
	job.ElevatorHealthy = types.Ends[bool]{To: true}
	job.ParkingDistanceMeters = types.Ends[float64]{From: 30, To: 5}

	got := d.Detect(job)
	want := []string{"parking_from", "stairs_from"}
	if strings.Join(ids(got), ",") != strings.Join(want, ",") {
		t.Fatalf("surcharges = %v, want %v", ids(got), want)
	}

	parking := got[0]
	if !parking.Quantity.Equal(decimal.NewFromInt(25)) {
		t.Errorf("parking meters = %s, want 25", parking.Quantity)
	}
	if !parking.TotalPrice().Equal(decimal.NewFromInt(25 * 99)) {
		t.Errorf("parking total = %s", parking.TotalPrice())
	}
	if !strings.Contains(parking.Reasoning, "30 m") || !strings.Contains(parking.Reasoning, "5 m") {
		t.Errorf("reasoning should cite distance and allowance: %q", parking.Reasoning)
	}

	stairs := got[1]
	if !stairs.TotalPrice().Equal(decimal.NewFromInt(500)) {
		t.Errorf("stairs total = %s, want (3-2) × 500", stairs.TotalPrice())
	}

	for _, r := range got {
		if !r.AutoAdd || r.Priority != types.PriorityHigh || r.Category != types.CategorySurcharge {
			t.Errorf("%s should be a high-priority auto-add surcharge: %+v", r.ID, r)
		}
	}
}

func TestDetectMutualExclusivity(t *testing.T) {
	d := NewDetector(pricing.Default())

	elevators := []types.Elevator{types.ElevatorUnknown, types.ElevatorNone, types.ElevatorSmall, types.ElevatorBig}
	for _, elevator := range elevators {
		for _, healthy := range []bool{true, false} {
			for floor := 0; floor <= 8; floor++ {
				job := baseJob()
				job.Floors = types.Ends[int]{From: floor, To: floor}
				job.Elevator = types.Ends[types.Elevator]{From: elevator, To: elevator}
				job.ElevatorHealthy = types.Ends[bool]{From: healthy, To: healthy}

				for _, end := range types.BothEnds {
					var stairs, broken bool
					for _, r := range d.Detect(job) {
						stairs = stairs || r.ID == "stairs_"+string(end)
						broken = broken || r.ID == "broken_elevator_"+string(end)
					}
					if stairs && broken {
						t.Fatalf("both fees at %s (elevator=%q healthy=%v floor=%d)", end, elevator, healthy, floor)
					}
				}
			}
		}
	}
}

func TestDetectBrokenElevator(t *testing.T) {
	d := NewDetector(pricing.Default())

	job := baseJob()
	job.Floors = types.Ends[int]{From: 1, To: 5}
	job.Elevator = types.Ends[types.Elevator]{From: types.ElevatorBig, To: types.ElevatorSmall}
	job.ElevatorHealthy = types.Ends[bool]{From: true, To: false}

	got := d.Detect(job)
	if len(got) != 1 || got[0].ID != "broken_elevator_to" {
		t.Fatalf("expected only broken_elevator_to, got %v", ids(got))
	}
	if !got[0].TotalPrice().Equal(decimal.NewFromInt(300)) {
		t.Errorf("broken elevator fee = %s, want flat 300", got[0].TotalPrice())
	}
}

func TestDetectStairsThreshold(t *testing.T) {
	d := NewDetector(pricing.Default())

	tests := []struct {
		floor int
		want  int64
	}{
		{0, 0},
		{2, 0},
		{3, 500},
		{6, 2000},
	}

	for _, tt := range tests {
		job := baseJob()
		job.Floors = types.Ends[int]{To: tt.floor}
		job.Elevator = types.Ends[types.Elevator]{From: types.ElevatorBig, To: types.ElevatorNone}
		job.ElevatorHealthy = types.Ends[bool]{From: true}

		total := types.SumLineItems(LineItems(d.Detect(job)))
		if !total.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("floor %d: surcharge %s, want %d", tt.floor, total, tt.want)
		}
	}
}

func TestStairsLabelCountsFloors(t *testing.T) {
	d := NewDetector(pricing.Default())

	for floor, want := range map[int]string{3: "Stairs at origin (1 floor)", 5: "Stairs at origin (3 floors)"} {
		job := baseJob()
		job.Floors = types.Ends[int]{From: floor}

		got := d.Detect(job)
		if len(got) != 1 || got[0].Label != want {
			t.Errorf("floor %d: labels = %v, want %q", floor, got, want)
		}
	}
}

func TestDetectOrderIsOriginThenDestination(t *testing.T) {
	d := NewDetector(pricing.Default())

	job := baseJob()
	job.Floors = types.Ends[int]{From: 4, To: 4}
	job.ParkingDistanceMeters = types.Ends[float64]{From: 12, To: 40}

	want := "parking_from,stairs_from,parking_to,stairs_to"
	if got := strings.Join(ids(d.Detect(job)), ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}
