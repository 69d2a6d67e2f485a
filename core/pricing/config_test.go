package pricing

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"relocation-quote/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in rate card must validate: %v", err)
	}
}

func TestTierForBoundaries(t *testing.T) {
	cfg := Default()

	tests := []struct {
		volume   float64
		wantRate float64
		wantOK   bool
	}{
		{45, 0.20, true},
		{30.0, 0.20, true},
		{29.999, 0.15, true},
		{20, 0.15, true},
		{15, 0.10, true},
		{10, 0.05, true},
		{9.99, 0, false},
		{1, 0, false},
	}

	for _, tt := range tests {
		tier, ok := cfg.TierFor(tt.volume)
		if ok != tt.wantOK || tier.Rate != tt.wantRate {
			t.Errorf("TierFor(%v) = %+v, %v; want rate %v, %v", tt.volume, tier, ok, tt.wantRate, tt.wantOK)
		}
	}
}

func TestValidateRejectsMissingRates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no personnel rate", func(c *Config) { c.PersonnelRatePerHour = 0 }, "personnel_rate_per_hour"},
		{"no tiers", func(c *Config) { c.VolumeDiscountTiers = nil }, "volume_tier"},
		{"unsorted tiers", func(c *Config) {
			c.VolumeDiscountTiers = []VolumeTier{{MinVolume: 10, Rate: 0.05}, {MinVolume: 30, Rate: 0.2}}
		}, "not below"},
		{"tier rate of one", func(c *Config) { c.VolumeDiscountTiers[0].Rate = 1 }, "rate must be within"},
		{"rut above one", func(c *Config) { c.RUTDiscountRate = 1.5 }, "rut_discount_rate"},
		{"negative piano hours", func(c *Config) { c.Throughput.PianoHours = -1 }, "throughput.piano_hours"},
		{"negative stairs minutes", func(c *Config) { c.Throughput.StairsMinutesPerFloor = -5 }, "stairs_minutes_per_floor"},
		{"negative suggestion fee", func(c *Config) { c.Recommendations.CleaningMaterialsFee = -1 }, "cleaning_materials_fee"},
		{"no furniture count", func(c *Config) { c.Recommendations.FurnitureAssumedCount = 0 }, "furniture_assumed_count"},
		{"zero coordination team", func(c *Config) { c.Recommendations.TeamCoordinationMinTeamSize = 0 }, "team_coordination_min_team_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err.Error(), tt.want)
			}
		})
	}
}

const sampleRateCard = `
version = "2024-09"

rates {
  personnel_rate_per_hour = 475
  truck_rate_per_hour     = 325
  rut_max_amount          = 50000
}

volume_tier {
  min_volume = 10
  rate       = 0.05
}

volume_tier {
  min_volume = 40
  rate       = 0.25
}

materials {
  box = 85
}

recommendations {
  team_coordination_min_team_size = 4
}
`

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleRateCard), "pricing.hcl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != "2024-09" {
		t.Errorf("version = %q", cfg.Version)
	}
	if cfg.PersonnelRatePerHour != 475 || cfg.TruckRatePerHour != 325 {
		t.Errorf("rates not overlaid: %v / %v", cfg.PersonnelRatePerHour, cfg.TruckRatePerHour)
	}
	if cfg.PackingRatePerHour != Default().PackingRatePerHour {
		t.Errorf("unset rate should keep default, got %v", cfg.PackingRatePerHour)
	}
	if cfg.Materials.Box != 85 || cfg.Materials.TapeRoll != 99 {
		t.Errorf("materials = %+v", cfg.Materials)
	}
	if cfg.Recommendations.TeamCoordinationMinTeamSize != 4 {
		t.Errorf("min team size = %d", cfg.Recommendations.TeamCoordinationMinTeamSize)
	}

	if len(cfg.VolumeDiscountTiers) != 2 {
		t.Fatalf("tiers should be replaced, got %+v", cfg.VolumeDiscountTiers)
	}
	if cfg.VolumeDiscountTiers[0].MinVolume != 40 {
		t.Errorf("tiers must be sorted descending, got %+v", cfg.VolumeDiscountTiers)
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, err := Parse([]byte("rates {\n  personnel_rate_per_hour = \n"), "broken.hcl")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.hcl") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse([]byte("rates {\n  truck_rate_per_hour = 0\n}\n"), "zero.hcl")
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestParseRejectsInvalidSuggestionRules(t *testing.T) {
	cards := map[string]string{
		"coordination.hcl": "recommendations {\n  team_coordination_min_team_size = 0\n}\n",
		"piano.hcl":        "throughput {\n  piano_hours = -1.5\n}\n",
	}
	for name, src := range cards {
		if _, err := Parse([]byte(src), name); !errors.IsType(err, errors.TypeConfig) {
			t.Errorf("%s: expected CONFIG_ERROR, got %v", name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.hcl")
	if err := os.WriteFile(path, []byte(sampleRateCard), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RUTMaxAmount != 50000 {
		t.Errorf("rut cap = %v", cfg.RUTMaxAmount)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.hcl")); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("missing file should be a CONFIG_ERROR, got %v", err)
	}

	def, err := LoadFile("")
	if err != nil || def.Version != Default().Version {
		t.Errorf("empty path should return defaults, got %v, %v", def, err)
	}
}

func TestShippedRateCardMatchesDefaults(t *testing.T) {
	card, err := LoadFile(filepath.Join("..", "..", "configs", "pricing.hcl"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := Default()
	want.Version = card.Version
	if !reflect.DeepEqual(card, want) {
		t.Errorf("configs/pricing.hcl drifted from the built-in rates:\n got %+v\nwant %+v", card, want)
	}
}
