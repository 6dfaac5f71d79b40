package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummary_Disabled(t *testing.T) {
	c := New("")
	got := c.Summary(context.Background())
	if got != skippedSummary {
		t.Fatalf("expected skipped summary, got %q", got)
	}
}

func TestSummary_AllClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{"indicator":"none","description":"All Systems Operational"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got := c.Summary(context.Background())
	if !strings.Contains(got, "no issues reported") {
		t.Fatalf("expected all-clear summary, got %q", got)
	}
}

func TestSummary_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{"indicator":"minor","description":"Degraded performance on text generation"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got := c.Summary(context.Background())
	if !strings.Contains(got, "warning") {
		t.Fatalf("expected warning summary, got %q", got)
	}
	if !strings.Contains(got, "Degraded performance") {
		t.Fatalf("expected description to be surfaced, got %q", got)
	}
}

func TestSummary_KeywordInDescription(t *testing.T) {
	// Indicator claims none but the description mentions an incident.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{"indicator":"none","description":"Investigating elevated latency"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got := c.Summary(context.Background())
	if !strings.Contains(got, "warning") {
		t.Fatalf("expected warning for latency keyword, got %q", got)
	}
}

func TestSummary_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	c := New(srv.URL)
	got := c.Summary(context.Background())
	if got != skippedSummary {
		t.Fatalf("expected skipped summary on upstream failure, got %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		indicator   string
		description string
		wantWarning bool
	}{
		{"clean", "none", "All Systems Operational", false},
		{"empty payload", "", "", false},
		{"major", "major", "Partial outage", true},
		{"keyword only", "none", "ongoing incident review", true},
		{"warning without description", "critical", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.indicator, tt.description)
			isWarning := strings.Contains(got, "warning")
			if isWarning != tt.wantWarning {
				t.Errorf("classify(%q, %q) = %q, warning=%v, want warning=%v",
					tt.indicator, tt.description, got, isWarning, tt.wantWarning)
			}
		})
	}
}
