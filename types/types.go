package types

// Uploader/Backend types

// IngestResponse is returned by POST /api/ingest/http on success.
type IngestResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
}

// BatchIngestResponse is returned by POST /api/ingest/batch on success.
type BatchIngestResponse struct {
	Success   bool           `json:"success"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []RecordResult `json:"results,omitempty"`
	Errors    []RecordResult `json:"errors,omitempty"`
}

// RecordResult reports the outcome for one element of a batch.
type RecordResult struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse is the body the backend sends for rejected requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Stored events

type LogEvent struct {
	ID         string         `json:"id"`
	Tenant     string         `json:"tenant"`
	Source     string         `json:"source"`
	ReceivedAt int64          `json:"receivedAt"`
	Fields     map[string]any `json:"fields"`
}

type LogListResponse struct {
	Count  int        `json:"count"`
	Events []LogEvent `json:"events"`
}

// Client-side results

// IngestResult is what the uploader reads back from a single ingest. ID is the
// returned id as text: strings unquoted, any other JSON value verbatim.
type IngestResult struct {
	ID string
}

// BatchIngestResult holds the batch counters as the JSON text the backend
// sent, so they print exactly as received.
type BatchIngestResult struct {
	Total     string
	Succeeded string
	Failed    string
}
