package model

// ErrorRecord is one loaded Sentry-style error document. Raw holds the decoded
// JSON verbatim; ErrorType is derived from the first event's tags when present.
type ErrorRecord struct {
	ErrorType string `json:"error_type"`
	Raw       any    `json:"raw"`
}

// PerfTrace is one loaded Galileo-style performance document. Raw holds the
// decoded JSON verbatim; LatencySeconds is derived from the first record's
// metrics when present (nil when the document carries no latency).
type PerfTrace struct {
	LatencySeconds *float64 `json:"latency_seconds"`
	Raw            any      `json:"raw"`
}

// Incident is one combined error log plus performance trace, optionally with
// the related source snippet the demo reviews.
type Incident struct {
	Errors     ErrorRecord `json:"errors"`
	Trace      PerfTrace   `json:"trace"`
	BrokenCode string      `json:"broken_code,omitempty"`
}
