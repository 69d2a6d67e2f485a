// Package cmd - serve command
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"relocation-quote/api"
	"relocation-quote/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP quote API",
	Long: `Serve POST /v1/quotes, GET /v1/pricing, GET /health and GET /version.

The rate card is loaded once at startup; an invalid card stops the
server before it listens.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	settings := config.Get().Server
	if serveAddr != "" {
		settings.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(assembler, Version, settings).ListenAndServe(ctx)
}
