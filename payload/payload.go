// Package payload loads log files from disk and classifies them by their
// top-level JSON shape.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/multierr"
)

var ErrNotFound = errors.New("file not found")

type Kind int

const (
	KindInvalid Kind = iota
	KindSingle
	KindBatch
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindBatch:
		return "batch"
	default:
		return "invalid"
	}
}

// Payload is a parsed log file. Body holds the compacted JSON exactly as it
// will be sent, so key order and number precision are preserved.
type Payload struct {
	Kind  Kind
	Body  []byte
	count int
}

// Len returns the number of log records carried by the payload.
func (p *Payload) Len() int {
	return p.count
}

// CheckExists reports ErrNotFound when nothing exists at path.
func CheckExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}
	return nil
}

// Load reads the file at path and classifies its contents. The file is
// closed before Load returns, and a failed close is reported with any other
// error.
func Load(path string) (p *Payload, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data)
}

// Parse validates data as a single JSON value and classifies it. Values that
// are neither an object nor an array yield KindInvalid with a nil error; only
// malformed JSON is an error.
func Parse(data []byte) (*Payload, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	body := buf.Bytes()

	switch body[0] {
	case '{':
		return &Payload{Kind: KindSingle, Body: body, count: 1}, nil
	case '[':
		// Elements are not checked to be objects; the backend reports
		// per-record failures itself.
		var elems []json.RawMessage
		if err := json.Unmarshal(body, &elems); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return &Payload{Kind: KindBatch, Body: body, count: len(elems)}, nil
	default:
		return &Payload{Kind: KindInvalid, Body: body}, nil
	}
}
