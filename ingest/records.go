package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vorpalengineering/logupload/types"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrUnsupportedSource = errors.New("unsupported log source")
	ErrNotAnObject       = errors.New("log record must be a JSON object")
)

var supportedSources = []string{"api", "firewall", "network", "crowdstrike", "aws", "m365", "ad"}

// SupportedSources lists the values accepted in a record's "source" field.
func SupportedSources() []string {
	return slices.Clone(supportedSources)
}

// newEvent checks the minimum a record needs to be stored and assigns it an id.
func newEvent(raw json.RawMessage, now time.Time) (types.LogEvent, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return types.LogEvent{}, ErrNotAnObject
	}

	tenant, err := requiredString(fields, "tenant")
	if err != nil {
		return types.LogEvent{}, err
	}
	source, err := requiredString(fields, "source")
	if err != nil {
		return types.LogEvent{}, err
	}
	if !slices.Contains(supportedSources, source) {
		return types.LogEvent{}, fmt.Errorf("%w: %q. Supported sources: %s",
			ErrUnsupportedSource, source, strings.Join(supportedSources, ", "))
	}

	return types.LogEvent{
		ID:         uuid.NewString(),
		Tenant:     tenant,
		Source:     source,
		ReceivedAt: now.UnixMilli(),
		Fields:     fields,
	}, nil
}

func requiredString(fields map[string]any, key string) (string, error) {
	value, ok := fields[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return value, nil
}

// statusFor maps a record error to the status returned for a single ingest.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrUnsupportedSource):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
