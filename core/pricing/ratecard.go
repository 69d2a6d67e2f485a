package pricing

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"relocation-quote/internal/errors"
	"relocation-quote/internal/logging"
)

// rateCardFile mirrors the HCL layout. Every attribute is optional and
// overlays the built-in defaults; volume_tier blocks replace the default
// tiers as a whole.
//
//	version = "2024-09"
//	rates {
//	  personnel_rate_per_hour = 475
//	}
//	volume_tier {
//	  min_volume = 30
//	  rate       = 0.2
//	}
type rateCardFile struct {
	Version         *string               `hcl:"version,optional"`
	Rates           *ratesBlock           `hcl:"rates,block"`
	Tiers           []tierBlock           `hcl:"volume_tier,block"`
	Materials       *materialsBlock       `hcl:"materials,block"`
	Throughput      *throughputBlock      `hcl:"throughput,block"`
	Recommendations *recommendationsBlock `hcl:"recommendations,block"`
}

type ratesBlock struct {
	PersonnelRatePerHour       *float64 `hcl:"personnel_rate_per_hour,optional"`
	TruckRatePerHour           *float64 `hcl:"truck_rate_per_hour,optional"`
	PackingRatePerHour         *float64 `hcl:"packing_rate_per_hour,optional"`
	CleaningRatePerHour        *float64 `hcl:"cleaning_rate_per_hour,optional"`
	RUTDiscountRate            *float64 `hcl:"rut_discount_rate,optional"`
	RUTMaxAmount               *float64 `hcl:"rut_max_amount,optional"`
	PianoFlatFee               *float64 `hcl:"piano_flat_fee,optional"`
	StorageRatePerCubicMeter   *float64 `hcl:"storage_rate_per_cubic_meter,optional"`
	StairsFeePerFloor          *float64 `hcl:"stairs_fee_per_floor,optional"`
	BrokenElevatorFee          *float64 `hcl:"broken_elevator_fee,optional"`
	ParkingRatePerMeter        *float64 `hcl:"parking_rate_per_meter,optional"`
	ParkingFreeMeters          *float64 `hcl:"parking_free_meters,optional"`
	ElevatorRequiredAboveFloor *int     `hcl:"elevator_required_above_floor,optional"`
	MinimumBillableHours       *float64 `hcl:"minimum_billable_hours,optional"`
}

type tierBlock struct {
	MinVolume float64 `hcl:"min_volume"`
	Rate      float64 `hcl:"rate"`
}

type materialsBlock struct {
	Box         *float64 `hcl:"box,optional"`
	TapeRoll    *float64 `hcl:"tape_roll,optional"`
	WardrobeBox *float64 `hcl:"wardrobe_box,optional"`
}

type throughputBlock struct {
	CubicMetersPerPersonHour  *float64 `hcl:"cubic_meters_per_person_hour,optional"`
	DrivingSpeedKmh           *float64 `hcl:"driving_speed_kmh,optional"`
	StairsMinutesPerFloor     *float64 `hcl:"stairs_minutes_per_floor,optional"`
	PackingCubicMetersPerHour *float64 `hcl:"packing_cubic_meters_per_hour,optional"`
	CleaningSqmPerHour        *float64 `hcl:"cleaning_sqm_per_hour,optional"`
	PianoHours                *float64 `hcl:"piano_hours,optional"`
	OfficeFactor              *float64 `hcl:"office_factor,optional"`
}

type recommendationsBlock struct {
	BoxesPerCubicMeter          *float64 `hcl:"boxes_per_cubic_meter,optional"`
	BoxesPerTapeRoll            *float64 `hcl:"boxes_per_tape_roll,optional"`
	CubicMetersPerWardrobeBox   *float64 `hcl:"cubic_meters_per_wardrobe_box,optional"`
	PianoProtectionFee          *float64 `hcl:"piano_protection_fee,optional"`
	FurnitureProtectionPerUnit  *float64 `hcl:"furniture_protection_per_unit,optional"`
	FurnitureAssumedCount       *int     `hcl:"furniture_assumed_count,optional"`
	CleaningMaterialsFee        *float64 `hcl:"cleaning_materials_fee,optional"`
	LongJobConsumablesFee       *float64 `hcl:"long_job_consumables_fee,optional"`
	LongJobHoursThreshold       *float64 `hcl:"long_job_hours_threshold,optional"`
	TeamCoordinationFee         *float64 `hcl:"team_coordination_fee,optional"`
	TeamCoordinationMinTeamSize *int     `hcl:"team_coordination_min_team_size,optional"`
}

// LoadFile reads an HCL rate card, overlays it on Default and validates it.
// An empty path returns the validated defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to read rate card", err).
			WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes HCL rate card source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	var rc rateCardFile
	if diags := gohcl.DecodeBody(file.Body, nil, &rc); diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	cfg := Default()
	rc.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Debug("rate card loaded",
		zap.String("file", filename),
		zap.String("version", cfg.Version),
		zap.Int("volume_tiers", len(cfg.VolumeDiscountTiers)),
	)
	return cfg, nil
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	var msgs []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msgs = append(msgs, fmt.Sprintf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail))
	}
	return errors.Configf("invalid rate card: %s", strings.Join(msgs, "; "))
}

func (rc *rateCardFile) applyTo(cfg *Config) {
	set(&cfg.Version, rc.Version)

	if r := rc.Rates; r != nil {
		set(&cfg.PersonnelRatePerHour, r.PersonnelRatePerHour)
		set(&cfg.TruckRatePerHour, r.TruckRatePerHour)
		set(&cfg.PackingRatePerHour, r.PackingRatePerHour)
		set(&cfg.CleaningRatePerHour, r.CleaningRatePerHour)
		set(&cfg.RUTDiscountRate, r.RUTDiscountRate)
		set(&cfg.RUTMaxAmount, r.RUTMaxAmount)
		set(&cfg.PianoFlatFee, r.PianoFlatFee)
		set(&cfg.StorageRatePerCubicMeter, r.StorageRatePerCubicMeter)
		set(&cfg.StairsFeePerFloor, r.StairsFeePerFloor)
		set(&cfg.BrokenElevatorFee, r.BrokenElevatorFee)
		set(&cfg.ParkingRatePerMeter, r.ParkingRatePerMeter)
		set(&cfg.ParkingFreeMeters, r.ParkingFreeMeters)
		set(&cfg.ElevatorRequiredAboveFloor, r.ElevatorRequiredAboveFloor)
		set(&cfg.MinimumBillableHours, r.MinimumBillableHours)
	}

	if len(rc.Tiers) > 0 {
		tiers := make([]VolumeTier, 0, len(rc.Tiers))
		for _, t := range rc.Tiers {
			tiers = append(tiers, VolumeTier{MinVolume: t.MinVolume, Rate: t.Rate})
		}
		SortTiers(tiers)
		cfg.VolumeDiscountTiers = tiers
	}

	if m := rc.Materials; m != nil {
		set(&cfg.Materials.Box, m.Box)
		set(&cfg.Materials.TapeRoll, m.TapeRoll)
		set(&cfg.Materials.WardrobeBox, m.WardrobeBox)
	}

	if t := rc.Throughput; t != nil {
		set(&cfg.Throughput.CubicMetersPerPersonHour, t.CubicMetersPerPersonHour)
		set(&cfg.Throughput.DrivingSpeedKmh, t.DrivingSpeedKmh)
		set(&cfg.Throughput.StairsMinutesPerFloor, t.StairsMinutesPerFloor)
		set(&cfg.Throughput.PackingCubicMetersPerHour, t.PackingCubicMetersPerHour)
		set(&cfg.Throughput.CleaningSqmPerHour, t.CleaningSqmPerHour)
		set(&cfg.Throughput.PianoHours, t.PianoHours)
		set(&cfg.Throughput.OfficeFactor, t.OfficeFactor)
	}

	if r := rc.Recommendations; r != nil {
		set(&cfg.Recommendations.BoxesPerCubicMeter, r.BoxesPerCubicMeter)
		set(&cfg.Recommendations.BoxesPerTapeRoll, r.BoxesPerTapeRoll)
		set(&cfg.Recommendations.CubicMetersPerWardrobeBox, r.CubicMetersPerWardrobeBox)
		set(&cfg.Recommendations.PianoProtectionFee, r.PianoProtectionFee)
		set(&cfg.Recommendations.FurnitureProtectionPerUnit, r.FurnitureProtectionPerUnit)
		set(&cfg.Recommendations.FurnitureAssumedCount, r.FurnitureAssumedCount)
		set(&cfg.Recommendations.CleaningMaterialsFee, r.CleaningMaterialsFee)
		set(&cfg.Recommendations.LongJobConsumablesFee, r.LongJobConsumablesFee)
		set(&cfg.Recommendations.LongJobHoursThreshold, r.LongJobHoursThreshold)
		set(&cfg.Recommendations.TeamCoordinationFee, r.TeamCoordinationFee)
		set(&cfg.Recommendations.TeamCoordinationMinTeamSize, r.TeamCoordinationMinTeamSize)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
