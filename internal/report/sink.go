// Package report persists generated incident reports beyond the page that
// displayed them.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/arun3676/llm911/internal/config"
	"github.com/arun3676/llm911/internal/model"
)

// Sink is a destination for generated reports.
type Sink interface {
	Write(report model.Report) error
	Close() error
}

// FromConfig builds the sink named by the report configuration.
func FromConfig(cfg config.ReportConfig) (Sink, error) {
	switch cfg.Sink {
	case "", "none":
		return Nop{}, nil
	case "stdout":
		return NewStdout(), nil
	case "file":
		return NewFile(cfg.Path)
	default:
		return nil, fmt.Errorf("report: unknown sink %q", cfg.Sink)
	}
}

// Nop discards reports.
type Nop struct{}

func (Nop) Write(model.Report) error { return nil }
func (Nop) Close() error             { return nil }

// Stdout writes JSON-encoded reports to stdout, one per line.
type Stdout struct {
	enc *json.Encoder
}

// NewStdout creates a stdout sink.
func NewStdout() *Stdout {
	return &Stdout{enc: json.NewEncoder(os.Stdout)}
}

func (s *Stdout) Write(r model.Report) error {
	if err := s.enc.Encode(r); err != nil {
		return fmt.Errorf("report: stdout: %w", err)
	}
	return nil
}

func (s *Stdout) Close() error { return nil }

// File appends NDJSON reports to a file. Reports are rare and small, so each
// write opens no buffers and flushes immediately.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// NewFile creates a file sink appending to path.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	return &File{f: f}, nil
}

func (s *File) Write(r model.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
