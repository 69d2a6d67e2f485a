// Package estimation derives labor hours for a relocation job.
//
// The estimate has two parts with a fixed division of responsibility:
// a base duration (volume throughput plus transit) that an external
// duration hint may replace, and location and service penalties that
// are always computed here.
package estimation

import (
	"math"

	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

// TimeEstimator estimates the hours a job takes
type TimeEstimator interface {
	Estimate(job *types.JobSpecification) Breakdown
}

// Breakdown is an hour estimate with its components
type Breakdown struct {
	types.TimeBreakdown

	// TotalHours is rounded up to a quarter hour and never below the
	// minimum billable hours
	TotalHours float64
}

// OnSiteHours is the moving time billed for personnel and truck,
// i.e. the total without separately billed packing and cleaning.
func (b Breakdown) OnSiteHours() float64 {
	return b.TotalHours - b.PackingHours - b.CleaningHours
}

// areaFactors convert cubic meters of goods to an approximate floor area
var areaFactors = map[types.PropertyType]float64{
	types.PropertyApartment: 0.3,
	types.PropertyHouse:     0.4,
	types.PropertyOffice:    0.25,
	types.PropertyStorage:   0.3,
}

// ThroughputEstimator estimates from fixed throughput assumptions
type ThroughputEstimator struct {
	cfg *pricing.Config
}

// New creates a throughput estimator over the rate card
func New(cfg *pricing.Config) *ThroughputEstimator {
	return &ThroughputEstimator{cfg: cfg}
}

// EstimateHours returns only the total hours
func (e *ThroughputEstimator) EstimateHours(job *types.JobSpecification) float64 {
	return e.Estimate(job).TotalHours
}

// Estimate computes the hour breakdown. It never fails: unknown
// elevators and missing health flags are treated as stairs.
func (e *ThroughputEstimator) Estimate(job *types.JobSpecification) Breakdown {
	var b Breakdown

	if job.DurationHintHours != nil && *job.DurationHintHours > 0 {
		b.BaseHours = *job.DurationHintHours
		b.UsedDurationHint = true
	} else {
		b.BaseHours = e.baseHours(job)
	}

	b.FloorPenaltyHours = e.floorPenalty(job)
	b.PackingHours = PackingHours(e.cfg, job)
	b.CleaningHours = CleaningHours(e.cfg, job)
	if job.WantsPiano() {
		b.SpecialItemHours = e.cfg.Throughput.PianoHours
	}

	b.Team = AssessTeam(job)

	raw := b.BaseHours + b.FloorPenaltyHours + b.PackingHours + b.CleaningHours + b.SpecialItemHours
	b.TotalHours = math.Max(roundUpQuarter(raw), e.cfg.MinimumBillableHours)
	return b
}

func (e *ThroughputEstimator) baseHours(job *types.JobSpecification) float64 {
	t := e.cfg.Throughput
	team := math.Max(float64(job.TeamSize), 1)

	handling := job.Volume / (t.CubicMetersPerPersonHour * team)
	if job.PropertyType == types.PropertyOffice {
		handling *= t.OfficeFactor
	}
	transit := 2 * job.DistanceKm / t.DrivingSpeedKmh
	return handling + transit
}

func (e *ThroughputEstimator) floorPenalty(job *types.JobSpecification) float64 {
	var hours float64
	for _, end := range types.BothEnds {
		if job.HasWorkingElevator(end) {
			continue
		}
		floors := job.Floors.Get(end)
		if floors > 0 {
			hours += float64(floors) * e.cfg.Throughput.StairsMinutesPerFloor / 60
		}
	}
	return hours
}

// PackingHours is ceil(volume / packing throughput) when packing is requested
func PackingHours(cfg *pricing.Config, job *types.JobSpecification) float64 {
	if !job.RequestedServices.Has(types.ServicePacking) {
		return 0
	}
	return math.Ceil(job.Volume / cfg.Throughput.PackingCubicMetersPerHour)
}

// CleaningHours is ceil(area / cleaning throughput) when cleaning is requested
func CleaningHours(cfg *pricing.Config, job *types.JobSpecification) float64 {
	if !job.RequestedServices.Has(types.ServiceCleaning) {
		return 0
	}
	return math.Ceil(CleaningArea(job) / cfg.Throughput.CleaningSqmPerHour)
}

// CleaningArea is the living area, or one derived from volume and property type
func CleaningArea(job *types.JobSpecification) float64 {
	if job.LivingAreaSqm != nil && *job.LivingAreaSqm > 0 {
		return *job.LivingAreaSqm
	}
	factor, ok := areaFactors[job.PropertyType]
	if !ok {
		factor = areaFactors[types.PropertyApartment]
	}
	return job.Volume / factor
}

// roundUpQuarter rounds up to the next 0.25h, ignoring float noise
func roundUpQuarter(h float64) float64 {
	quarters := math.Round(h*4*1e6) / 1e6
	return math.Ceil(quarters) / 4
}
