package types

import (
	"fmt"
	"math"

	"relocation-quote/internal/errors"
)

// Upper bounds keep every derived hour and price finite
const (
	MaxVolumeM3          = 10000
	MaxDistanceKm        = 5000
	MaxTeamSize          = 50
	MaxFloor             = 200
	MaxParkingMeters     = 5000
	MaxLivingAreaSqm     = 100000
	MaxBoxCount          = 100000
	MaxDurationHintHours = 1000
)

// Validate checks the job invariants. Field names in the returned
// error match the JSON input contract.
func (j *JobSpecification) Validate() error {
	var fields []errors.FieldError
	add := func(field, msg string) {
		fields = append(fields, errors.FieldError{Field: field, Message: msg})
	}

	if !finite(j.Volume) || j.Volume <= 0 || j.Volume > MaxVolumeM3 {
		add("volume_m3", fmt.Sprintf("must be a number greater than 0 and at most %d", MaxVolumeM3))
	}
	if !finite(j.DistanceKm) || j.DistanceKm < 0 || j.DistanceKm > MaxDistanceKm {
		add("distance_km", fmt.Sprintf("must be a number between 0 and %d", MaxDistanceKm))
	}
	if j.TeamSize < 1 || j.TeamSize > MaxTeamSize {
		add("team_size", fmt.Sprintf("must be between 1 and %d", MaxTeamSize))
	}

	switch j.PropertyType {
	case PropertyApartment, PropertyHouse, PropertyOffice, PropertyStorage:
	default:
		add("property_type", "must be one of apartment, house, office, storage")
	}
	if a := j.LivingAreaSqm; a != nil && (!finite(*a) || *a <= 0 || *a > MaxLivingAreaSqm) {
		add("living_area_sqm", fmt.Sprintf("must be greater than 0 and at most %d when given", MaxLivingAreaSqm))
	}

	for _, end := range BothEnds {
		suffix := "_" + string(end)
		if f := j.Floors.Get(end); f < 0 || f > MaxFloor {
			add("floors"+suffix, fmt.Sprintf("must be between 0 and %d", MaxFloor))
		}
		switch j.Elevator.Get(end) {
		case ElevatorUnknown, ElevatorNone, ElevatorSmall, ElevatorBig:
		default:
			add("elevator"+suffix, "must be one of none, small, big")
		}
		if p := j.ParkingDistanceMeters.Get(end); !finite(p) || p < 0 || p > MaxParkingMeters {
			add("parking_distance"+suffix+"_m", fmt.Sprintf("must be a number between 0 and %d", MaxParkingMeters))
		}
	}

	for _, svc := range j.RequestedServices.Sorted() {
		if _, err := ParseService(string(svc)); err != nil {
			add("additional_services", err.Error())
		}
	}

	if n := j.BoxCountProvided; n != nil && (*n < 0 || *n > MaxBoxCount) {
		add("box_count_provided", fmt.Sprintf("must be between 0 and %d", MaxBoxCount))
	}
	if h := j.DurationHintHours; h != nil && (!finite(*h) || *h < 0 || *h > MaxDurationHintHours) {
		add("ml_duration_hint_hours", fmt.Sprintf("must be a number between 0 and %d or null", MaxDurationHintHours))
	}

	if len(fields) > 0 {
		return errors.Validation(fields...)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
