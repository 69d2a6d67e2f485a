// Package main - Entry point for the relocation quote HTTP server
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"relocation-quote/api"
	"relocation-quote/core/pricing"
	"relocation-quote/core/quote"
	"relocation-quote/internal/config"
	"relocation-quote/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	rateCard := flag.String("rate-card", "", "HCL rate card (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *rateCard != "" {
		cfg.Pricing.RateCardPath = *rateCard
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("falling back to default logging", zap.Error(err))
	}
	defer logging.Sync()

	// An invalid rate card is fatal before the server listens
	card, err := pricing.LoadFile(cfg.Pricing.RateCardPath)
	if err != nil {
		logging.Fatal("invalid rate card", zap.String("path", cfg.Pricing.RateCardPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(quote.New(card), version, cfg.Server)
	if err := server.ListenAndServe(ctx); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
