// Package cmd - Rate card inspection
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"relocation-quote/core/pricing"
	"relocation-quote/core/ui"
	"relocation-quote/internal/config"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Inspect and validate rate cards",
	Long: `Rate card commands.

The active rate card is the built-in one, overlaid with the HCL file
given by --rate-card or pricing.rate_card_path in the config file.`,
}

var pricingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rate card",
	Args:  cobra.NoArgs,
	RunE:  runPricingShow,
}

var pricingValidateCmd = &cobra.Command{
	Use:   "validate <rate-card.hcl>",
	Short: "Validate an HCL rate card",
	Long: `Parse an HCL rate card, overlay it on the built-in rates and
check every rate and tier. Exits non-zero when the card is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runPricingValidate,
}

var pricingFormat string

func init() {
	rootCmd.AddCommand(pricingCmd)
	pricingCmd.AddCommand(pricingShowCmd)
	pricingCmd.AddCommand(pricingValidateCmd)

	pricingShowCmd.Flags().StringVarP(&pricingFormat, "format", "f", "cli", "output format (cli, json)")
}

func runPricingShow(cmd *cobra.Command, args []string) error {
	card, err := loadRateCard()
	if err != nil {
		return err
	}

	if pricingFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	}

	printRateCard(ui.NewWriter(cmd.OutOrStdout(), noColor), card)
	return nil
}

func runPricingValidate(cmd *cobra.Command, args []string) error {
	card, err := pricing.LoadFile(args[0])
	if err != nil {
		return err
	}
	ui.NewWriter(cmd.OutOrStdout(), noColor).Success("%s is valid (version %s, %d volume tiers)",
		args[0], card.Version, len(card.VolumeDiscountTiers))
	return nil
}

func printRateCard(w *ui.Writer, card *pricing.Config) {
	currency := config.Get().Pricing.Currency
	money := func(v float64) string { return fmt.Sprintf("%g %s", v, currency) }

	w.Header("Rate card " + card.Version)

	rates := w.NewTable("Rate", "Value").AlignRight(1)
	rates.AddRow("Personnel per person-hour", money(card.PersonnelRatePerHour))
	rates.AddRow("Truck per hour", money(card.TruckRatePerHour))
	rates.AddRow("Packing per hour", money(card.PackingRatePerHour))
	rates.AddRow("Cleaning per hour", money(card.CleaningRatePerHour))
	rates.AddRow("Piano flat fee", money(card.PianoFlatFee))
	rates.AddRow("Storage per m³", money(card.StorageRatePerCubicMeter))
	rates.AddRow("Stairs per floor", money(card.StairsFeePerFloor))
	rates.AddRow("Broken elevator", money(card.BrokenElevatorFee))
	rates.AddRow("Parking per meter", money(card.ParkingRatePerMeter))
	rates.AddRow("Free parking distance", fmt.Sprintf("%g m", card.ParkingFreeMeters))
	rates.AddRow("Stairs charged above floor", fmt.Sprintf("%d", card.ElevatorRequiredAboveFloor))
	rates.AddRow("Minimum billable hours", fmt.Sprintf("%g h", card.MinimumBillableHours))
	rates.AddRow("RUT rate", fmt.Sprintf("%g%%", card.RUTDiscountRate*100))
	rates.AddRow("RUT cap", money(card.RUTMaxAmount))
	rates.Render()

	w.Println("")
	w.SubHeader("Volume discounts")
	tiers := w.NewTable("From", "Discount").AlignRight(0, 1)
	for _, t := range card.VolumeDiscountTiers {
		tiers.AddRow(fmt.Sprintf("%g m³", t.MinVolume), fmt.Sprintf("%g%%", t.Rate*100))
	}
	tiers.Render()

	w.Println("")
	w.SubHeader("Materials")
	materials := w.NewTable("Material", "Price").AlignRight(1)
	materials.AddRow("Moving box", money(card.Materials.Box))
	materials.AddRow("Tape roll", money(card.Materials.TapeRoll))
	materials.AddRow("Wardrobe box", money(card.Materials.WardrobeBox))
	materials.Render()
}
