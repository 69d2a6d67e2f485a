// Package pricing holds the rate card every quote is priced against.
// A Config is loaded once at startup and shared read-only between requests.
package pricing

import (
	"fmt"
	"sort"

	"relocation-quote/internal/errors"
)

// VolumeTier is a discount bracket keyed by cubic-meter volume
type VolumeTier struct {
	// MinVolume is the inclusive lower bound
	MinVolume float64 `json:"min_volume"`

	// Rate is the discount fraction, e.g. 0.15
	Rate float64 `json:"rate"`
}

// Description renders the tier for summaries, e.g. "15% (>= 20 m³)"
func (t VolumeTier) Description() string {
	return fmt.Sprintf("%g%% (>= %g m³)", t.Rate*100, t.MinVolume)
}

// MaterialPrices are per-unit material prices
type MaterialPrices struct {
	Box         float64 `json:"box"`
	TapeRoll    float64 `json:"tape_roll"`
	WardrobeBox float64 `json:"wardrobe_box"`
}

// Throughput holds the time-estimation assumptions
type Throughput struct {
	// CubicMetersPerPersonHour is how much one mover handles per hour
	CubicMetersPerPersonHour float64 `json:"cubic_meters_per_person_hour"`

	// DrivingSpeedKmh is the average truck speed; the distance is driven twice
	DrivingSpeedKmh float64 `json:"driving_speed_kmh"`

	// StairsMinutesPerFloor is added per floor at an end without a working elevator
	StairsMinutesPerFloor float64 `json:"stairs_minutes_per_floor"`

	PackingCubicMetersPerHour float64 `json:"packing_cubic_meters_per_hour"`
	CleaningSqmPerHour        float64 `json:"cleaning_sqm_per_hour"`
	PianoHours                float64 `json:"piano_hours"`

	// OfficeFactor scales base hours for office moves
	OfficeFactor float64 `json:"office_factor"`
}

// RecommendationRules holds suggestion fees and thresholds
type RecommendationRules struct {
	BoxesPerCubicMeter          float64 `json:"boxes_per_cubic_meter"`
	BoxesPerTapeRoll            float64 `json:"boxes_per_tape_roll"`
	CubicMetersPerWardrobeBox   float64 `json:"cubic_meters_per_wardrobe_box"`
	PianoProtectionFee          float64 `json:"piano_protection_fee"`
	FurnitureProtectionPerUnit  float64 `json:"furniture_protection_per_unit"`
	FurnitureAssumedCount       int     `json:"furniture_assumed_count"`
	CleaningMaterialsFee        float64 `json:"cleaning_materials_fee"`
	LongJobConsumablesFee       float64 `json:"long_job_consumables_fee"`
	LongJobHoursThreshold       float64 `json:"long_job_hours_threshold"`
	TeamCoordinationFee         float64 `json:"team_coordination_fee"`
	TeamCoordinationMinTeamSize int     `json:"team_coordination_min_team_size"`
}

// Config is the complete rate card
type Config struct {
	// Version identifies the rate card deployment
	Version string `json:"version"`

	PersonnelRatePerHour float64 `json:"personnel_rate_per_hour"`
	TruckRatePerHour     float64 `json:"truck_rate_per_hour"`
	PackingRatePerHour   float64 `json:"packing_rate_per_hour"`
	CleaningRatePerHour  float64 `json:"cleaning_rate_per_hour"`

	RUTDiscountRate float64 `json:"rut_discount_rate"`

	// RUTMaxAmount caps the deduction per quote; 0 disables the cap
	RUTMaxAmount float64 `json:"rut_max_amount"`

	PianoFlatFee             float64 `json:"piano_flat_fee"`
	StorageRatePerCubicMeter float64 `json:"storage_rate_per_cubic_meter"`

	StairsFeePerFloor   float64 `json:"stairs_fee_per_floor"`
	BrokenElevatorFee   float64 `json:"broken_elevator_fee"`
	ParkingRatePerMeter float64 `json:"parking_rate_per_meter"`

	ParkingFreeMeters          float64 `json:"parking_free_meters"`
	ElevatorRequiredAboveFloor int     `json:"elevator_required_above_floor"`
	MinimumBillableHours       float64 `json:"minimum_billable_hours"`

	// VolumeDiscountTiers are sorted by MinVolume descending
	VolumeDiscountTiers []VolumeTier `json:"volume_discount_tiers"`

	Materials       MaterialPrices      `json:"materials"`
	Throughput      Throughput          `json:"throughput"`
	Recommendations RecommendationRules `json:"recommendations"`
}

// Default returns the built-in rate card
func Default() *Config {
	return &Config{
		Version: "builtin-2024.1",

		PersonnelRatePerHour: 450,
		TruckRatePerHour:     300,
		PackingRatePerHour:   450,
		CleaningRatePerHour:  400,

		RUTDiscountRate: 0.5,
		RUTMaxAmount:    75000,

		PianoFlatFee:             2000,
		StorageRatePerCubicMeter: 100,

		StairsFeePerFloor:   500,
		BrokenElevatorFee:   300,
		ParkingRatePerMeter: 99,

		ParkingFreeMeters:          5,
		ElevatorRequiredAboveFloor: 2,
		MinimumBillableHours:       2,

		VolumeDiscountTiers: []VolumeTier{
			{MinVolume: 30, Rate: 0.20},
			{MinVolume: 20, Rate: 0.15},
			{MinVolume: 15, Rate: 0.10},
			{MinVolume: 10, Rate: 0.05},
		},

		Materials: MaterialPrices{
			Box:         79,
			TapeRoll:    99,
			WardrobeBox: 149,
		},

		Throughput: Throughput{
			CubicMetersPerPersonHour:  3.0,
			DrivingSpeedKmh:           40,
			StairsMinutesPerFloor:     20,
			PackingCubicMetersPerHour: 10,
			CleaningSqmPerHour:        20,
			PianoHours:                1.5,
			OfficeFactor:              0.9,
		},

		Recommendations: RecommendationRules{
			BoxesPerCubicMeter:          3.5,
			BoxesPerTapeRoll:            15,
			CubicMetersPerWardrobeBox:   10,
			PianoProtectionFee:          500,
			FurnitureProtectionPerUnit:  200,
			FurnitureAssumedCount:       2,
			CleaningMaterialsFee:        295,
			LongJobConsumablesFee:       350,
			LongJobHoursThreshold:       8,
			TeamCoordinationFee:         500,
			TeamCoordinationMinTeamSize: 3,
		},
	}
}

// Validate reports a configuration error for any missing or
// nonsensical rate. Callers treat the error as fatal at startup.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value float64
	}{
		{"personnel_rate_per_hour", c.PersonnelRatePerHour},
		{"truck_rate_per_hour", c.TruckRatePerHour},
		{"packing_rate_per_hour", c.PackingRatePerHour},
		{"cleaning_rate_per_hour", c.CleaningRatePerHour},
		{"piano_flat_fee", c.PianoFlatFee},
		{"storage_rate_per_cubic_meter", c.StorageRatePerCubicMeter},
		{"stairs_fee_per_floor", c.StairsFeePerFloor},
		{"broken_elevator_fee", c.BrokenElevatorFee},
		{"parking_rate_per_meter", c.ParkingRatePerMeter},
		{"minimum_billable_hours", c.MinimumBillableHours},
		{"materials.box", c.Materials.Box},
		{"materials.tape_roll", c.Materials.TapeRoll},
		{"materials.wardrobe_box", c.Materials.WardrobeBox},
		{"throughput.cubic_meters_per_person_hour", c.Throughput.CubicMetersPerPersonHour},
		{"throughput.driving_speed_kmh", c.Throughput.DrivingSpeedKmh},
		{"throughput.packing_cubic_meters_per_hour", c.Throughput.PackingCubicMetersPerHour},
		{"throughput.cleaning_sqm_per_hour", c.Throughput.CleaningSqmPerHour},
		{"throughput.office_factor", c.Throughput.OfficeFactor},
		{"recommendations.boxes_per_cubic_meter", c.Recommendations.BoxesPerCubicMeter},
		{"recommendations.boxes_per_tape_roll", c.Recommendations.BoxesPerTapeRoll},
		{"recommendations.cubic_meters_per_wardrobe_box", c.Recommendations.CubicMetersPerWardrobeBox},
	}
	for _, r := range required {
		if !(r.value > 0) {
			return errors.Configf("%s must be greater than 0, got %v", r.name, r.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"throughput.stairs_minutes_per_floor", c.Throughput.StairsMinutesPerFloor},
		{"throughput.piano_hours", c.Throughput.PianoHours},
		{"recommendations.piano_protection_fee", c.Recommendations.PianoProtectionFee},
		{"recommendations.furniture_protection_per_unit", c.Recommendations.FurnitureProtectionPerUnit},
		{"recommendations.cleaning_materials_fee", c.Recommendations.CleaningMaterialsFee},
		{"recommendations.long_job_consumables_fee", c.Recommendations.LongJobConsumablesFee},
		{"recommendations.long_job_hours_threshold", c.Recommendations.LongJobHoursThreshold},
		{"recommendations.team_coordination_fee", c.Recommendations.TeamCoordinationFee},
	}
	for _, r := range nonNegative {
		if !(r.value >= 0) {
			return errors.Configf("%s must be >= 0, got %v", r.name, r.value)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"recommendations.furniture_assumed_count", c.Recommendations.FurnitureAssumedCount},
		{"recommendations.team_coordination_min_team_size", c.Recommendations.TeamCoordinationMinTeamSize},
	}
	for _, r := range counts {
		if r.value < 1 {
			return errors.Configf("%s must be at least 1, got %d", r.name, r.value)
		}
	}

	if c.RUTDiscountRate < 0 || c.RUTDiscountRate > 1 {
		return errors.Configf("rut_discount_rate must be within [0, 1], got %v", c.RUTDiscountRate)
	}
	if c.RUTMaxAmount < 0 {
		return errors.Configf("rut_max_amount must be >= 0, got %v", c.RUTMaxAmount)
	}
	if c.ParkingFreeMeters < 0 {
		return errors.Configf("parking_free_meters must be >= 0, got %v", c.ParkingFreeMeters)
	}
	if c.ElevatorRequiredAboveFloor < 0 {
		return errors.Configf("elevator_required_above_floor must be >= 0, got %d", c.ElevatorRequiredAboveFloor)
	}

	if len(c.VolumeDiscountTiers) == 0 {
		return errors.Config("at least one volume_tier is required")
	}
	for i, tier := range c.VolumeDiscountTiers {
		if tier.MinVolume < 0 {
			return errors.Configf("volume_tier %d: min_volume must be >= 0", i)
		}
		if tier.Rate < 0 || tier.Rate >= 1 {
			return errors.Configf("volume_tier %d: rate must be within [0, 1), got %v", i, tier.Rate)
		}
		if i > 0 {
			prev := c.VolumeDiscountTiers[i-1]
			if tier.MinVolume >= prev.MinVolume {
				return errors.Configf("volume_tier %d: min_volume %v is not below the previous tier %v", i, tier.MinVolume, prev.MinVolume)
			}
			if tier.Rate > prev.Rate {
				return errors.Configf("volume_tier %d: rate %v exceeds the larger tier's %v", i, tier.Rate, prev.Rate)
			}
		}
	}
	return nil
}

// SortTiers orders tiers by MinVolume descending
func SortTiers(tiers []VolumeTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinVolume > tiers[j].MinVolume
	})
}

// TierFor returns the tier with the largest MinVolume <= volume
func (c *Config) TierFor(volume float64) (VolumeTier, bool) {
	for _, tier := range c.VolumeDiscountTiers {
		if volume >= tier.MinVolume {
			return tier, true
		}
	}
	return VolumeTier{}, false
}
