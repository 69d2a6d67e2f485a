package input

import (
	"strings"
	"testing"

	"relocation-quote/core/types"
	"relocation-quote/internal/errors"
)

const scenarioJSON = `{
  "volume_m3": 24,
  "distance_km": 10,
  "team_size": 2,
  "floors_from": 3, "floors_to": 0,
  "elevator_from": "none", "elevator_to": "big",
  "elevator_healthy_to": true,
  "parking_distance_from_m": 30, "parking_distance_to_m": 5,
  "additional_services": ["packing"],
  "special_requirements": ["Heavy Furniture"],
  "ml_duration_hint_hours": null
}`

func TestParseScenario(t *testing.T) {
	job, err := Parse(strings.NewReader(scenarioJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if job.Volume != 24 || job.DistanceKm != 10 || job.TeamSize != 2 {
		t.Errorf("basic fields = %+v", job)
	}
	if job.PropertyType != types.PropertyApartment {
		t.Errorf("property type should default to apartment, got %q", job.PropertyType)
	}
	if job.Elevator.From != types.ElevatorNone || job.Elevator.To != types.ElevatorBig {
		t.Errorf("elevators = %+v", job.Elevator)
	}
	if job.ElevatorHealthy.From || !job.ElevatorHealthy.To {
		t.Errorf("elevator health = %+v", job.ElevatorHealthy)
	}
	if !job.RequestedServices.Has(types.ServicePacking) {
		t.Error("packing should be requested")
	}
	if !job.SpecialRequirements.Has("heavy_furniture") {
		t.Errorf("tags should be normalized, got %v", job.SpecialRequirements)
	}
	if job.DurationHintHours != nil {
		t.Error("null hint should stay nil")
	}
	if err := job.Validate(); err != nil {
		t.Errorf("mapped job should be valid: %v", err)
	}
}

func TestParseDefaults(t *testing.T) {
	job, err := Parse(strings.NewReader(`{"volume_m3": 5}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if job.TeamSize != DefaultTeamSize {
		t.Errorf("team size = %d, want %d", job.TeamSize, DefaultTeamSize)
	}
	if job.Elevator.From != types.ElevatorUnknown {
		t.Errorf("missing elevator should be unknown, got %q", job.Elevator.From)
	}
	if len(job.RequestedServices) != 0 {
		t.Errorf("services = %v, want none", job.RequestedServices)
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing volume", `{"distance_km": 3}`, []string{"volume_m3"}},
		{"zero volume", `{"volume_m3": 0}`, []string{"volume_m3"}},
		{"negative distance", `{"volume_m3": 5, "distance_km": -1}`, []string{"distance_km"}},
		{"zero team", `{"volume_m3": 5, "team_size": 0}`, []string{"team_size"}},
		{"bad elevator", `{"volume_m3": 5, "elevator_to": "escalator"}`, []string{"elevator_to"}},
		{"bad property", `{"volume_m3": 5, "property_type": "castle"}`, []string{"property_type"}},
		{"empty service", `{"volume_m3": 5, "additional_services": ["packing", ""]}`, []string{"additional_services"}},
		{"unknown service", `{"volume_m3": 5, "additional_services": ["teleport"]}`, []string{"additional_services"}},
		{"negative boxes and hint", `{"volume_m3": 5, "box_count_provided": -2, "ml_duration_hint_hours": -1}`,
			[]string{"box_count_provided", "ml_duration_hint_hours"}},
		{"negative floors and parking", `{"volume_m3": 5, "floors_from": -1, "parking_distance_to_m": -3}`,
			[]string{"floors_from", "parking_distance_to_m"}},
		{"huge volume", `{"volume_m3": 1e303, "distance_km": 10, "team_size": 2}`, []string{"volume_m3"}},
		{"huge distance and hint", `{"volume_m3": 5, "distance_km": 1e300, "ml_duration_hint_hours": 1e300}`,
			[]string{"distance_km", "ml_duration_hint_hours"}},
		{"huge team and parking", `{"volume_m3": 5, "team_size": 51, "parking_distance_from_m": 9999}`,
			[]string{"team_size", "parking_distance_from_m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.body))
			if !errors.IsType(err, errors.TypeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			e, _ := errors.As(err)
			for _, f := range tt.fields {
				if !e.HasField(f) {
					t.Errorf("missing field %s in %+v", f, e.Fields)
				}
			}
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"volume_m3": `))
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}

	_, err = Parse(strings.NewReader(`{"volume_m3": "lots"}`))
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error for wrong type, got %v", err)
	}
}
