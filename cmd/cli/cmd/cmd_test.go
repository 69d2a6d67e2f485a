package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relocation-quote/internal/config"
	"relocation-quote/internal/errors"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// flags are package globals; reset between runs
	outputFormat, pricingFormat, rateCardFile, cfgFile = "", "cli", "", filepath.Join(t.TempDir(), "missing.json")
	showRecommendations, noColor = true, true
	config.Set(config.Default())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const job = `{"volume_m3": 24, "distance_km": 10, "team_size": 2,
  "floors_from": 3, "elevator_from": "none", "elevator_to": "big", "elevator_healthy_to": true,
  "parking_distance_from_m": 30, "parking_distance_to_m": 5, "additional_services": ["packing"]}`

func TestQuoteJSONFromStdin(t *testing.T) {
	out, err := run(t, job, "quote", "--format", "json", "--no-color")
	if err != nil {
		t.Fatalf("quote failed: %v\n%s", err, out)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc["total_price"] != float64(6136) {
		t.Errorf("total_price = %v", doc["total_price"])
	}
}

func TestQuoteFromFileAsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(path, []byte(job), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "quote", path, "--no-color")
	if err != nil {
		t.Fatalf("quote failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Relocation Quote", "6136 kr", "Recommendations"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestQuoteRejectsInvalidJob(t *testing.T) {
	_, err := run(t, `{"volume_m3": 0}`, "quote", "--no-color")
	if !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestPricingValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.hcl")
	bad := filepath.Join(dir, "bad.hcl")
	os.WriteFile(good, []byte("version = \"test-1\"\nrates {\n  truck_rate_per_hour = 350\n}\n"), 0644)
	os.WriteFile(bad, []byte("rates {\n  truck_rate_per_hour = -1\n}\n"), 0644)

	out, err := run(t, "", "pricing", "validate", good, "--no-color")
	if err != nil || !strings.Contains(out, "test-1") {
		t.Errorf("good card: err = %v, out = %s", err, out)
	}

	if _, err := run(t, "", "pricing", "validate", bad, "--no-color"); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("bad card should be a config error, got %v", err)
	}
}

func TestPricingShowUsesRateCard(t *testing.T) {
	card := filepath.Join(t.TempDir(), "card.hcl")
	os.WriteFile(card, []byte("rates {\n  personnel_rate_per_hour = 495\n}\n"), 0644)

	out, err := run(t, "", "pricing", "show", "--format", "json", "--rate-card", card)
	if err != nil {
		t.Fatalf("pricing show failed: %v", err)
	}
	if !strings.Contains(out, `"personnel_rate_per_hour": 495`) {
		t.Errorf("rate card override not applied:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil || !strings.Contains(out, Version) {
		t.Errorf("version output = %q, err = %v", out, err)
	}
}
