// Package cmd provides the CLI commands for relocation-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"relocation-quote/core/pricing"
	"relocation-quote/core/quote"
	"relocation-quote/internal/config"
	"relocation-quote/internal/logging"
)

// Version is set at build time with -ldflags "-X relocation-quote/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile      string
	rateCardFile string
	verbose      bool
	noColor      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "relocation-quote",
	Short: "Price relocation jobs",
	Long: `relocation-quote prices moving jobs from a job specification.

It estimates labor hours, applies location surcharges, volume and RUT
discounts, and lists recommended add-ons. Every quote is deterministic
for a given rate card.

Examples:
  relocation-quote quote job.json
  cat job.json | relocation-quote quote --format json
  relocation-quote pricing show --rate-card configs/pricing.hcl
  relocation-quote serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.relocation-quote.json)")
	rootCmd.PersistentFlags().StringVar(&rateCardFile, "rate-card", "", "HCL rate card overlaid on the built-in rates")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if rateCardFile != "" {
		cfg.Pricing.RateCardPath = rateCardFile
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadRateCard loads the configured rate card. Failures are configuration
// errors and abort the command.
func loadRateCard() (*pricing.Config, error) {
	path := config.Get().Pricing.RateCardPath
	card, err := pricing.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("rate card ready", zap.String("path", path), zap.String("version", card.Version))
	return card, nil
}

func newAssembler() (*quote.Assembler, error) {
	card, err := loadRateCard()
	if err != nil {
		return nil, err
	}
	return quote.New(card), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "relocation-quote version %s\n", Version)
	},
}
