// Package types - Job specification types
package types

import (
	"fmt"
	"strings"

	"relocation-quote/core/determinism"
)

// Ends holds one value per end of the move
type Ends[T any] struct {
	From T `json:"from"`
	To   T `json:"to"`
}

// End identifies one side of the move
type End string

const (
	EndFrom End = "from"
	EndTo   End = "to"
)

// Label returns the customer-facing name of the end
func (e End) Label() string {
	if e == EndTo {
		return "destination"
	}
	return "origin"
}

// Get returns the value for the given end
func (e Ends[T]) Get(end End) T {
	if end == EndTo {
		return e.To
	}
	return e.From
}

// BothEnds lists the ends in emission order
var BothEnds = []End{EndFrom, EndTo}

// Elevator describes the elevator at one end.
// The zero value is ElevatorUnknown, which prices like ElevatorNone.
type Elevator string

const (
	ElevatorUnknown Elevator = ""
	ElevatorNone    Elevator = "none"
	ElevatorSmall   Elevator = "small"
	ElevatorBig     Elevator = "big"
)

// ParseElevator parses an elevator value; empty input yields ElevatorUnknown
func ParseElevator(s string) (Elevator, error) {
	switch e := Elevator(strings.ToLower(strings.TrimSpace(s))); e {
	case ElevatorUnknown, ElevatorNone, ElevatorSmall, ElevatorBig:
		return e, nil
	}
	return ElevatorUnknown, fmt.Errorf("unknown elevator %q (want none, small or big)", s)
}

// Present reports whether an elevator exists. Unknown counts as absent.
func (e Elevator) Present() bool {
	return e == ElevatorSmall || e == ElevatorBig
}

// PropertyType is the kind of property being moved
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyOffice    PropertyType = "office"
	PropertyStorage   PropertyType = "storage"
)

// ParsePropertyType parses a property type; empty input yields PropertyApartment
func ParsePropertyType(s string) (PropertyType, error) {
	switch p := PropertyType(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PropertyApartment, nil
	case PropertyApartment, PropertyHouse, PropertyOffice, PropertyStorage:
		return p, nil
	}
	return "", fmt.Errorf("unknown property type %q", s)
}

// Service is a requested service
type Service string

const (
	ServiceMoving   Service = "moving"
	ServicePacking  Service = "packing"
	ServiceCleaning Service = "cleaning"
	ServicePiano    Service = "piano"
	ServiceStorage  Service = "storage"
)

// KnownServices lists every accepted service
var KnownServices = []Service{ServiceMoving, ServicePacking, ServiceCleaning, ServicePiano, ServiceStorage}

// ParseService parses a single service name
func ParseService(s string) (Service, error) {
	svc := Service(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownServices {
		if svc == known {
			return svc, nil
		}
	}
	if svc == "" {
		return "", fmt.Errorf("empty service name")
	}
	return "", fmt.Errorf("unknown service %q", s)
}

// ServiceSet is a set of requested services
type ServiceSet map[Service]struct{}

// NewServiceSet builds a set from the given services
func NewServiceSet(services ...Service) ServiceSet {
	set := make(ServiceSet, len(services))
	for _, s := range services {
		set[s] = struct{}{}
	}
	return set
}

// Has reports whether the service was requested
func (s ServiceSet) Has(svc Service) bool {
	_, ok := s[svc]
	return ok
}

// Sorted returns the services in a stable order
func (s ServiceSet) Sorted() []Service {
	return determinism.SortedKeys(s)
}

// TagSet is a set of normalized special-requirement tags
type TagSet map[string]struct{}

// NewTagSet builds a set, lowercasing and trimming each tag
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		if n := normalizeTag(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether the exact tag is present
func (t TagSet) Has(tag string) bool {
	_, ok := t[normalizeTag(tag)]
	return ok
}

// HasAny reports whether any tag contains one of the fragments
func (t TagSet) HasAny(fragments ...string) bool {
	for tag := range t {
		for _, f := range fragments {
			if strings.Contains(tag, f) {
				return true
			}
		}
	}
	return false
}

func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// JobSpecification describes a relocation job to be quoted
type JobSpecification struct {
	// Volume is the goods volume in cubic meters
	Volume float64

	// DistanceKm is the one-way driving distance
	DistanceKm float64

	// TeamSize is the number of movers
	TeamSize int

	PropertyType PropertyType

	// LivingAreaSqm is optional; cleaning derives an area from volume when nil
	LivingAreaSqm *float64

	Floors                Ends[int]
	Elevator              Ends[Elevator]
	ElevatorHealthy       Ends[bool]
	ParkingDistanceMeters Ends[float64]

	RequestedServices   ServiceSet
	SpecialRequirements TagSet

	// BoxCountProvided is the number of boxes the customer already has
	BoxCountProvided *int

	// DurationHintHours is an externally computed base duration (ML hint)
	DurationHintHours *float64
}

// HasWorkingElevator reports whether the end has an elevator that can be used
func (j *JobSpecification) HasWorkingElevator(end End) bool {
	return j.Elevator.Get(end).Present() && j.ElevatorHealthy.Get(end)
}

// ProvidedBoxes returns the customer's own box count, defaulting to 0
func (j *JobSpecification) ProvidedBoxes() int {
	if j.BoxCountProvided == nil {
		return 0
	}
	return *j.BoxCountProvided
}

// WantsPiano reports whether a piano is part of the job
func (j *JobSpecification) WantsPiano() bool {
	return j.RequestedServices.Has(ServicePiano) || j.SpecialRequirements.Has("piano")
}
