// Package input - Normalized quote input
// Every transport (CLI file, stdin, HTTP) decodes through this package,
// so the JSON input contract has exactly one reading.
package input

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"relocation-quote/core/types"
	"relocation-quote/internal/errors"
)

// DefaultTeamSize applies when team_size is omitted
const DefaultTeamSize = 2

// QuoteRequest is the JSON input contract
type QuoteRequest struct {
	VolumeM3   *float64 `json:"volume_m3" validate:"required,gt=0,lte=10000"`
	DistanceKm float64  `json:"distance_km" validate:"gte=0,lte=5000"`
	TeamSize   *int     `json:"team_size,omitempty" validate:"omitempty,gte=1,lte=50"`

	PropertyType  string   `json:"property_type,omitempty" validate:"omitempty,oneof=apartment house office storage"`
	LivingAreaSqm *float64 `json:"living_area_sqm,omitempty" validate:"omitempty,gt=0,lte=100000"`

	FloorsFrom int `json:"floors_from" validate:"gte=0,lte=200"`
	FloorsTo   int `json:"floors_to" validate:"gte=0,lte=200"`

	ElevatorFrom string `json:"elevator_from,omitempty" validate:"omitempty,oneof=none small big"`
	ElevatorTo   string `json:"elevator_to,omitempty" validate:"omitempty,oneof=none small big"`

	ElevatorHealthyFrom bool `json:"elevator_healthy_from"`
	ElevatorHealthyTo   bool `json:"elevator_healthy_to"`

	ParkingDistanceFromM float64 `json:"parking_distance_from_m" validate:"gte=0,lte=5000"`
	ParkingDistanceToM   float64 `json:"parking_distance_to_m" validate:"gte=0,lte=5000"`

	AdditionalServices  []string `json:"additional_services,omitempty" validate:"dive,required"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`

	BoxCountProvided    *int     `json:"box_count_provided,omitempty" validate:"omitempty,gte=0,lte=100000"`
	MLDurationHintHours *float64 `json:"ml_duration_hint_hours,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode reads a QuoteRequest from JSON
func Decode(r io.Reader) (*QuoteRequest, error) {
	var req QuoteRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.Input("request body is not a valid quote request", err)
	}
	return &req, nil
}

// Validate screens the request shape. Semantic checks run again on the
// mapped job specification.
func (r *QuoteRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Internal("request validation failed", err)
	}

	fields := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.FieldError{
			Field:   fieldName(fe),
			Message: message(fe),
		})
	}
	return errors.Validation(fields...)
}

// fieldName drops slice indices so "additional_services[1]" reports as
// the contract field
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag() + " check"
}

// ToJob maps the request onto a job specification
func (r *QuoteRequest) ToJob() (*types.JobSpecification, error) {
	var fields []errors.FieldError
	add := func(field string, err error) {
		fields = append(fields, errors.FieldError{Field: field, Message: err.Error()})
	}

	job := &types.JobSpecification{
		DistanceKm:            r.DistanceKm,
		TeamSize:              DefaultTeamSize,
		LivingAreaSqm:         r.LivingAreaSqm,
		Floors:                types.Ends[int]{From: r.FloorsFrom, To: r.FloorsTo},
		ElevatorHealthy:       types.Ends[bool]{From: r.ElevatorHealthyFrom, To: r.ElevatorHealthyTo},
		ParkingDistanceMeters: types.Ends[float64]{From: r.ParkingDistanceFromM, To: r.ParkingDistanceToM},
		SpecialRequirements:   types.NewTagSet(r.SpecialRequirements...),
		BoxCountProvided:      r.BoxCountProvided,
		DurationHintHours:     r.MLDurationHintHours,
	}
	if r.VolumeM3 != nil {
		job.Volume = *r.VolumeM3
	}
	if r.TeamSize != nil {
		job.TeamSize = *r.TeamSize
	}

	var err error
	if job.PropertyType, err = types.ParsePropertyType(r.PropertyType); err != nil {
		add("property_type", err)
	}
	if job.Elevator.From, err = types.ParseElevator(r.ElevatorFrom); err != nil {
		add("elevator_from", err)
	}
	if job.Elevator.To, err = types.ParseElevator(r.ElevatorTo); err != nil {
		add("elevator_to", err)
	}

	job.RequestedServices = types.NewServiceSet()
	for _, name := range r.AdditionalServices {
		svc, err := types.ParseService(name)
		if err != nil {
			add("additional_services", err)
			continue
		}
		job.RequestedServices[svc] = struct{}{}
	}

	if len(fields) > 0 {
		return nil, errors.Validation(fields...)
	}
	return job, nil
}

// Parse decodes, screens and maps a request in one step
func Parse(r io.Reader) (*types.JobSpecification, error) {
	req, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req.ToJob()
}
