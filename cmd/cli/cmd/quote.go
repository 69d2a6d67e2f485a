// Package cmd - quote command
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"relocation-quote/core/input"
	"relocation-quote/core/output"
	"relocation-quote/internal/config"
	"relocation-quote/internal/errors"
)

var (
	outputFormat        string
	showRecommendations bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [file|-]",
	Short: "Price a job specification",
	Long: `Read a JSON job specification and print the priced quote.

The input uses the same fields as POST /v1/quotes. With no argument,
or "-", the specification is read from stdin.

Examples:
  relocation-quote quote job.json
  relocation-quote quote --format json - < job.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json); defaults to the configured format")
	quoteCmd.Flags().BoolVarP(&showRecommendations, "recommendations", "r", true, "list surcharges and suggestions")
}

func runQuote(cmd *cobra.Command, args []string) error {
	src, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	job, err := input.Parse(src)
	if err != nil {
		return err
	}

	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	q, err := assembler.Build(job)
	if err != nil {
		return err
	}

	cfg := config.Get()
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	show := showRecommendations && cfg.Output.ShowRecommendations
	if cmd.Flags().Changed("recommendations") {
		show = showRecommendations
	}

	formatter, err := output.DefaultRegistry(show, noColor).Get(output.Format(format))
	if err != nil {
		return err
	}

	return formatter.Render(cmd.OutOrStdout(), q)
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.Input("cannot open job specification", err).WithContext("path", args[0])
	}
	return f, func() { f.Close() }, nil
}
