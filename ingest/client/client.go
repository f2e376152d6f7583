package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vorpalengineering/logupload/types"
)

const (
	SinglePath = "/api/ingest/http"
	BatchPath  = "/api/ingest/batch"

	RequestIDHeader = "X-Request-ID"

	// MissingID is reported when a successful single upload carries no id.
	MissingID = "N/A"

	userAgentProduct = "logupload"
	userAgentVersion = "0.1.0"
)

// StatusError is returned when the backend answers with anything but 201.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// IngestClient posts log payloads to an ingestion backend
type IngestClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*IngestClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *IngestClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *IngestClient) {
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *IngestClient) {
		c.logger = logger
	}
}

func NewIngestClient(baseURL string, opts ...Option) *IngestClient {
	c := &IngestClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SingleURL is the endpoint used for one log record.
func (c *IngestClient) SingleURL() string {
	return c.baseURL + SinglePath
}

// BatchURL is the endpoint used for an array of log records.
func (c *IngestClient) BatchURL() string {
	return c.baseURL + BatchPath
}

// IngestSingle sends one JSON object. The returned ID falls back to
// MissingID when the backend omits it or answers with an unexpected body.
func (c *IngestClient) IngestSingle(ctx context.Context, body []byte) (*types.IngestResult, error) {
	respBody, err := c.post(ctx, c.SingleURL(), body)
	if err != nil {
		return nil, err
	}

	// A 201 is a success whatever the body looks like
	fields := c.decodeFields(respBody)
	return &types.IngestResult{
		ID: fieldText(fields, "id", MissingID),
	}, nil
}

// IngestBatch sends a JSON array. Counters missing from the response are 0.
func (c *IngestClient) IngestBatch(ctx context.Context, body []byte) (*types.BatchIngestResult, error) {
	respBody, err := c.post(ctx, c.BatchURL(), body)
	if err != nil {
		return nil, err
	}

	fields := c.decodeFields(respBody)
	return &types.BatchIngestResult{
		Total:     fieldText(fields, "total", "0"),
		Succeeded: fieldText(fields, "succeeded", "0"),
		Failed:    fieldText(fields, "failed", "0"),
	}, nil
}

// decodeFields splits a response object into its top-level fields without
// interpreting them, so one odd field cannot hide the others.
func (c *IngestClient) decodeFields(respBody []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &fields); err != nil {
		c.logger.Debug().Err(err).Msg("ignoring undecodable ingest response")
		return nil
	}
	return fields
}

// fieldText renders one response field for display. Strings are unquoted,
// other values keep their JSON text, and absent or null fields use fallback.
func fieldText(fields map[string]json.RawMessage, key, fallback string) string {
	raw, ok := fields[key]
	if !ok {
		return fallback
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (c *IngestClient) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	// Build request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set(RequestIDHeader, requestID)

	// Send request
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Str("request_id", requestID).Msg("ingest request failed")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Info().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("ingest request completed")

	// Check response
	if resp.StatusCode != http.StatusCreated {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func userAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s; %s)", userAgentProduct, userAgentVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
