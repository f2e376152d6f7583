// Package uploader implements the log upload command: it loads a JSON file,
// sends it to the single or batch ingest endpoint depending on its shape and
// reports the outcome as an exit code.
package uploader

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vorpalengineering/logupload/ingest/client"
	"github.com/vorpalengineering/logupload/payload"
)

const (
	ExitOK      = 0
	ExitFailure = 1

	defaultProgName = "logupload"
	bannerWidth     = 50
)

type Uploader struct {
	cfg    *Config
	client *client.IngestClient
	out    *printer
	logger zerolog.Logger
}

type Option func(*Uploader)

// WithColor enables ANSI colors on status markers.
func WithColor(enabled bool) Option {
	return func(u *Uploader) {
		u.out.color = enabled
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

func New(cfg *Config, out io.Writer, opts ...Option) *Uploader {
	u := &Uploader{
		cfg:    cfg,
		out:    &printer{w: out},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}

	u.client = client.NewIngestClient(
		cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(u.logger),
	)
	return u
}

// Run performs one upload. args follows os.Args: the program name followed
// by exactly one file path. The returned value is the process exit code.
func (u *Uploader) Run(ctx context.Context, args []string) int {
	u.printBanner()

	if len(args) != 2 {
		u.printUsage(progName(args))
		return ExitFailure
	}
	path := args[1]

	if err := payload.CheckExists(path); err != nil {
		if errors.Is(err, payload.ErrNotFound) {
			u.out.printf("%s File not found: %s\n", u.out.red("Error:"), path)
		} else {
			u.out.printf("%s %v\n", u.out.red("Error:"), err)
		}
		return ExitFailure
	}

	u.out.printf("Loading file: %s\n", path)
	p, err := payload.Load(path)
	if err != nil {
		u.out.printf("%s %v\n", u.out.red("Error loading file:"), err)
		return ExitFailure
	}

	var ok bool
	switch p.Kind {
	case payload.KindBatch:
		u.out.printf("Detected batch upload (%d logs)\n\n", p.Len())
		ok = u.sendBatch(ctx, p)
	case payload.KindSingle:
		u.out.printf("Detected single log\n\n")
		ok = u.sendSingle(ctx, p)
	default:
		u.out.printf("%s Invalid JSON format\n", u.out.red("Error:"))
		u.out.printf("Expected: JSON object or array of objects\n")
		return ExitFailure
	}

	u.out.printf("\n")
	if !ok {
		u.out.printf("%s\n", u.out.red("Upload failed!"))
		return ExitFailure
	}
	u.out.printf("%s\n", u.out.green("Upload complete!"))
	u.out.printf("Check the dashboard at: %s\n", DashboardURL)
	return ExitOK
}

func (u *Uploader) sendSingle(ctx context.Context, p *payload.Payload) bool {
	resp, err := u.client.IngestSingle(ctx, p.Body)
	if err != nil {
		u.reportFailure(err)
		return false
	}

	u.out.printf("%s Success: ID %s\n", u.out.green("✓"), resp.ID)
	return true
}

func (u *Uploader) sendBatch(ctx context.Context, p *payload.Payload) bool {
	resp, err := u.client.IngestBatch(ctx, p.Body)
	if err != nil {
		u.reportFailure(err)
		return false
	}

	u.out.printf("%s Batch upload success!\n", u.out.green("✓"))
	u.out.printf("  Total: %s\n", resp.Total)
	u.out.printf("  Succeeded: %s\n", resp.Succeeded)
	u.out.printf("  Failed: %s\n", resp.Failed)
	return true
}

func (u *Uploader) reportFailure(err error) {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		u.out.printf("%s Failed: HTTP %d\n", u.out.red("✗"), statusErr.StatusCode)
		u.out.printf("  Error: %s\n", statusErr.Body)
		return
	}
	u.out.printf("%s Error: %v\n", u.out.red("✗"), err)
}

func (u *Uploader) printBanner() {
	rule := strings.Repeat("=", bannerWidth)
	u.out.printf("%s\n", rule)
	u.out.printf("Log Management System - Batch Uploader\n")
	u.out.printf("%s\n", rule)
	u.out.printf("API URL: %s\n\n", u.cfg.APIURL)
}

func (u *Uploader) printUsage(prog string) {
	u.out.printf("Usage:\n")
	u.out.printf("  %s <json-file>\n", prog)
	u.out.printf("  %s samples/batch-logs-sample.json\n", prog)
	u.out.printf("\n")
	u.out.printf("Environment variables:\n")
	u.out.printf("  %s - Backend URL (default: %s)\n", APIURLEnv, DefaultAPIURL)
}

func progName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return defaultProgName
	}
	return filepath.Base(args[0])
}
