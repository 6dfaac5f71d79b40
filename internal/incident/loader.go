package incident

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arun3676/llm911/internal/model"
)

// File names inside the data directory, matching the sample producer.
const (
	SentryFile     = "sample_sentry.json"
	GalileoFile    = "sample_galileo.json"
	BrokenCodeFile = "broken_code.py"
)

// NotFoundError reports a missing sample file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ParseError reports a sample file that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse JSON in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile decodes one JSON document from disk. The decoded value mirrors the
// file's content exactly; no schema is enforced.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("incident: read %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Load reads the sample Sentry and Galileo documents from dir and derives the
// two summary fields the analysis uses. The related code snippet is optional:
// a missing or unreadable broken_code.py is logged and left empty.
func Load(dir string) (model.Incident, error) {
	sentry, err := LoadFile(filepath.Join(dir, SentryFile))
	if err != nil {
		return model.Incident{}, err
	}
	galileo, err := LoadFile(filepath.Join(dir, GalileoFile))
	if err != nil {
		return model.Incident{}, err
	}

	inc := model.Incident{
		Errors: model.ErrorRecord{
			ErrorType: deriveErrorType(sentry),
			Raw:       sentry,
		},
		Trace: model.PerfTrace{
			LatencySeconds: deriveLatencySeconds(galileo),
			Raw:            galileo,
		},
	}

	codePath := filepath.Join(dir, BrokenCodeFile)
	code, err := os.ReadFile(codePath)
	if err != nil {
		slog.Warn("could not read related code file", "path", codePath, "error", err)
	} else {
		inc.BrokenCode = string(code)
	}

	return inc, nil
}

// deriveErrorType inspects the first Sentry event's tags. The sample data tags
// timeout incidents; anything else stays UnknownError.
func deriveErrorType(doc any) string {
	events, ok := doc.([]any)
	if !ok || len(events) == 0 {
		return "UnknownError"
	}
	first, ok := events[0].(map[string]any)
	if !ok {
		return "UnknownError"
	}
	tags, ok := first["tags"].(map[string]any)
	if !ok {
		return "UnknownError"
	}
	if tags["incident_type"] == "timeout" {
		return "TimeoutError"
	}
	return "UnknownError"
}

// deriveLatencySeconds pulls latency_ms out of the first Galileo record's
// metrics and converts to seconds. Returns nil when the shape doesn't match.
func deriveLatencySeconds(doc any) *float64 {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	records, ok := root["records"].([]any)
	if !ok || len(records) == 0 {
		return nil
	}
	first, ok := records[0].(map[string]any)
	if !ok {
		return nil
	}
	metrics, ok := first["metrics"].(map[string]any)
	if !ok {
		return nil
	}
	ms, ok := metrics["latency_ms"].(float64)
	if !ok {
		return nil
	}
	secs := ms / 1000.0
	return &secs
}
