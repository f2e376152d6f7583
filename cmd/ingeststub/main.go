package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vorpalengineering/logupload/ingest"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Parse command line flags
	configPath := flag.String("config", "ingest/config.yaml", "Path to config file")
	flag.Parse()

	// Load config
	cfg, err := ingest.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger = logger.Level(cfg.LogLevel())

	// Create context that is cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and start the stub backend
	srv := ingest.NewServer(cfg, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ingest stub stopped")
	}
}
