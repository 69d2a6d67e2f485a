package recommendation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

func rec(id string, autoAdd bool, p types.Priority, price float64) types.Recommendation {
	return types.Recommendation{
		LineItem: types.NewLineItem(id, id, types.CategoryMaterial, price, 1),
		Priority: p,
		AutoAdd:  autoAdd,
	}
}

func order(recs []types.Recommendation) string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return strings.Join(ids, ",")
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		in   []types.Recommendation
		want string
	}{
		{
			name: "auto add beats price",
			in: []types.Recommendation{
				rec("cheap_suggestion", false, types.PriorityHigh, 9000),
				rec("surcharge", true, types.PriorityLow, 1),
			},
			want: "surcharge,cheap_suggestion",
		},
		{
			name: "priority before price",
			in: []types.Recommendation{
				rec("low", false, types.PriorityLow, 1000),
				rec("high", false, types.PriorityHigh, 10),
				rec("medium", false, types.PriorityMedium, 500),
			},
			want: "high,medium,low",
		},
		{
			name: "higher price first within priority",
			in: []types.Recommendation{
				rec("a", false, types.PriorityLow, 100),
				rec("b", false, types.PriorityLow, 300),
				rec("c", false, types.PriorityLow, 200),
			},
			want: "b,c,a",
		},
		{
			name: "ties keep input order",
			in: []types.Recommendation{
				rec("first", false, types.PriorityMedium, 100),
				rec("second", false, types.PriorityMedium, 100),
			},
			want: "first,second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.in)
			if got := order(tt.in); got != tt.want {
				t.Errorf("order = %s, want %s", got, tt.want)
			}
		})
	}
}

func scenarioJob() *types.JobSpecification {
	return &types.JobSpecification{
		Volume:            24,
		DistanceKm:        10,
		TeamSize:          2,
		PropertyType:      types.PropertyApartment,
		RequestedServices: types.NewServiceSet(types.ServicePacking),
	}
}

func TestGenerateScenario(t *testing.T) {
	e := NewEngine(pricing.Default())
	surcharges := []types.Recommendation{
		rec("parking_from", true, types.PriorityHigh, 2475),
		rec("stairs_from", true, types.PriorityHigh, 500),
	}

	got := e.Generate(scenarioJob(), 8.5, surcharges)
	want := "parking_from,stairs_from,boxes,tape,wardrobe_boxes,long_job_consumables"
	if order(got) != want {
		t.Fatalf("recommendations = %s, want %s", order(got), want)
	}

	boxes := got[2]
	if !boxes.TotalPrice().Equal(decimal.NewFromInt(84 * 79)) {
		t.Errorf("boxes = %s, want ceil(24 × 3.5) × 79", boxes.TotalPrice())
	}
	if !got[3].Quantity.Equal(decimal.NewFromInt(6)) {
		t.Errorf("tape rolls = %s, want 6", got[3].Quantity)
	}
	if opt := Optional(got); len(opt) != 4 {
		t.Errorf("optional suggestions = %d, want 4", len(opt))
	}
}

func TestGenerateConditions(t *testing.T) {
	e := NewEngine(pricing.Default())
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name    string
		mutate  func(j *types.JobSpecification)
		hours   float64
		present []string
		absent  []string
	}{
		{
			name:    "enough boxes provided",
			mutate:  func(j *types.JobSpecification) { j.BoxCountProvided = intPtr(100) },
			hours:   4,
			present: []string{"tape"},
			absent:  []string{"boxes", "long_job_consumables"},
		},
		{
			name: "piano and heavy furniture",
			mutate: func(j *types.JobSpecification) {
				j.SpecialRequirements = types.NewTagSet("Piano", "heavy-furniture")
			},
			hours:   4,
			present: []string{"piano_protection", "furniture_protection"},
		},
		{
			name: "cleaning and big team",
			mutate: func(j *types.JobSpecification) {
				j.RequestedServices = types.NewServiceSet(types.ServiceCleaning)
				j.TeamSize = 3
			},
			hours:   4,
			present: []string{"cleaning_materials", "team_coordination"},
			absent:  []string{"wardrobe_boxes"},
		},
		{
			name:   "exactly at long job threshold",
			mutate: func(j *types.JobSpecification) {},
			hours:  8,
			absent: []string{"long_job_consumables", "piano_protection", "team_coordination"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := scenarioJob()
			tt.mutate(j)
			got := "," + order(e.Generate(j, tt.hours, nil)) + ","
			for _, id := range tt.present {
				if !strings.Contains(got, ","+id+",") {
					t.Errorf("expected %s in %s", id, got)
				}
			}
			for _, id := range tt.absent {
				if strings.Contains(got, ","+id+",") {
					t.Errorf("did not expect %s in %s", id, got)
				}
			}
		})
	}
}

func TestPianoProtectionSortsFirstAmongSuggestions(t *testing.T) {
	e := NewEngine(pricing.Default())
	j := scenarioJob()
	j.SpecialRequirements = types.NewTagSet("piano")

	got := e.Generate(j, 4, nil)
	if got[0].ID != "piano_protection" {
		t.Errorf("first suggestion = %s, want piano_protection", got[0].ID)
	}
}
