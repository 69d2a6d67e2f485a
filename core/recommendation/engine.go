// Package recommendation produces the quote's recommendation list:
// mandatory surcharges first, then optional upsell suggestions.
package recommendation

import (
	"fmt"
	"math"
	"strings"

	"relocation-quote/core/determinism"
	"relocation-quote/core/pricing"
	"relocation-quote/core/types"
)

// Engine generates optional suggestions from the job facts
type Engine struct {
	cfg *pricing.Config
}

// NewEngine creates a recommendation engine
func NewEngine(cfg *pricing.Config) *Engine {
	return &Engine{cfg: cfg}
}

// rule is a single suggestion check
type rule func(e *Engine, job *types.JobSpecification, hours float64) (types.Recommendation, bool)

// rules run in this order; Sort decides the final order
var rules = []rule{
	(*Engine).boxes,
	(*Engine).tape,
	(*Engine).pianoProtection,
	(*Engine).furnitureProtection,
	(*Engine).cleaningMaterials,
	(*Engine).longJobConsumables,
	(*Engine).teamCoordination,
	(*Engine).wardrobeBoxes,
}

// Generate returns the surcharges followed by every applicable
// suggestion, sorted.
func (e *Engine) Generate(job *types.JobSpecification, hours float64, surcharges []types.Recommendation) []types.Recommendation {
	out := make([]types.Recommendation, 0, len(surcharges)+len(rules))
	out = append(out, surcharges...)
	for _, r := range rules {
		if rec, ok := r(e, job, hours); ok {
			out = append(out, rec)
		}
	}
	Sort(out)
	return out
}

// Sort orders mandatory items first, then by priority, then by price.
// Ties keep their generation order.
func Sort(recs []types.Recommendation) {
	determinism.SortSlice(recs, func(a, b types.Recommendation) bool {
		if a.AutoAdd != b.AutoAdd {
			return a.AutoAdd
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		return a.TotalPrice().GreaterThan(b.TotalPrice())
	})
}

// Optional returns only the suggestions that are not auto-added
func Optional(recs []types.Recommendation) []types.Recommendation {
	var out []types.Recommendation
	for _, r := range recs {
		if !r.AutoAdd {
			out = append(out, r)
		}
	}
	return out
}

func suggest(item types.LineItem, priority types.Priority, reasoning string) types.Recommendation {
	return types.Recommendation{
		LineItem:  item,
		Reasoning: reasoning,
		Priority:  priority,
	}
}

func (e *Engine) estimatedBoxes(job *types.JobSpecification) int {
	return int(math.Ceil(job.Volume * e.cfg.Recommendations.BoxesPerCubicMeter))
}

func (e *Engine) boxes(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	needed := e.estimatedBoxes(job)
	have := job.ProvidedBoxes()
	if needed <= have {
		return types.Recommendation{}, false
	}
	missing := needed - have
	return suggest(
		types.NewLineItem("boxes", fmt.Sprintf("Moving boxes (%d)", missing), types.CategoryMaterial,
			e.cfg.Materials.Box, float64(missing)),
		types.PriorityMedium,
		fmt.Sprintf("%g m³ typically needs about %d boxes; %d are already available.", job.Volume, needed, have),
	), true
}

func (e *Engine) tape(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	boxes := e.estimatedBoxes(job)
	if boxes <= 0 {
		return types.Recommendation{}, false
	}
	rolls := math.Ceil(float64(boxes) / e.cfg.Recommendations.BoxesPerTapeRoll)
	return suggest(
		types.NewLineItem("tape", fmt.Sprintf("Packing tape (%g rolls)", rolls), types.CategoryMaterial,
			e.cfg.Materials.TapeRoll, rolls),
		types.PriorityLow,
		fmt.Sprintf("One roll seals about %g boxes.", e.cfg.Recommendations.BoxesPerTapeRoll),
	), true
}

func (e *Engine) pianoProtection(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	if !job.SpecialRequirements.Has("piano") {
		return types.Recommendation{}, false
	}
	return suggest(
		types.NewLineItem("piano_protection", "Piano protection", types.CategoryMaterial,
			e.cfg.Recommendations.PianoProtectionFee, 1),
		types.PriorityHigh,
		"Pianos need padded covers and straps to avoid damage in transit.",
	), true
}

func (e *Engine) furnitureProtection(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	if !job.SpecialRequirements.HasAny("large_furniture", "heavy_furniture") {
		return types.Recommendation{}, false
	}
	r := e.cfg.Recommendations
	return suggest(
		types.NewLineItem("furniture_protection", fmt.Sprintf("Furniture protection (%d pieces)", r.FurnitureAssumedCount),
			types.CategoryMaterial, r.FurnitureProtectionPerUnit, float64(r.FurnitureAssumedCount)),
		types.PriorityMedium,
		"Large furniture should be wrapped to protect it and the stairwell.",
	), true
}

func (e *Engine) cleaningMaterials(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	for _, svc := range job.RequestedServices.Sorted() {
		if strings.Contains(string(svc), "cleaning") {
			return suggest(
				types.NewLineItem("cleaning_materials", "Cleaning materials", types.CategoryMaterial,
					e.cfg.Recommendations.CleaningMaterialsFee, 1),
				types.PriorityLow,
				"Move-out cleaning is requested; detergents and cloths can be supplied.",
			), true
		}
	}
	return types.Recommendation{}, false
}

func (e *Engine) longJobConsumables(_ *types.JobSpecification, hours float64) (types.Recommendation, bool) {
	threshold := e.cfg.Recommendations.LongJobHoursThreshold
	if hours <= threshold {
		return types.Recommendation{}, false
	}
	return suggest(
		types.NewLineItem("long_job_consumables", "Extra consumables for long job", types.CategoryMaterial,
			e.cfg.Recommendations.LongJobConsumablesFee, 1),
		types.PriorityLow,
		fmt.Sprintf("The job is estimated at %g h, over %g h; extra blankets and straps are usually needed.", hours, threshold),
	), true
}

func (e *Engine) teamCoordination(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	minTeam := e.cfg.Recommendations.TeamCoordinationMinTeamSize
	if job.TeamSize < minTeam {
		return types.Recommendation{}, false
	}
	return suggest(
		types.NewLineItem("team_coordination", "Team coordination", types.CategoryService,
			e.cfg.Recommendations.TeamCoordinationFee, 1),
		types.PriorityMedium,
		fmt.Sprintf("Teams of %d or more benefit from a dedicated coordinator on site.", minTeam),
	), true
}

func (e *Engine) wardrobeBoxes(job *types.JobSpecification, _ float64) (types.Recommendation, bool) {
	if !job.RequestedServices.Has(types.ServicePacking) {
		return types.Recommendation{}, false
	}
	count := math.Ceil(job.Volume / e.cfg.Recommendations.CubicMetersPerWardrobeBox)
	return suggest(
		types.NewLineItem("wardrobe_boxes", fmt.Sprintf("Wardrobe boxes (%g)", count), types.CategoryMaterial,
			e.cfg.Materials.WardrobeBox, count),
		types.PriorityLow,
		"Packing is requested; wardrobe boxes keep hanging clothes uncreased.",
	), true
}
