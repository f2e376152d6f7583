package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/vorpalengineering/logupload/uploader"
)

func main() {
	// Load API_URL from the environment
	cfg, err := uploader.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		os.Exit(uploader.ExitFailure)
	}

	// Diagnostics go to stderr so stdout stays a plain report
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	u := uploader.New(cfg, os.Stdout,
		uploader.WithColor(color),
		uploader.WithLogger(logger),
	)
	os.Exit(u.Run(context.Background(), os.Args))
}
