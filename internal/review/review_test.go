package review

import (
	"strings"
	"testing"

	"github.com/arun3676/llm911/internal/model"
)

func ptr(f float64) *float64 { return &f }

func TestRun_TimeoutWithExplicitTimeout(t *testing.T) {
	inc := model.Incident{
		Errors:     model.ErrorRecord{ErrorType: "TimeoutError"},
		BrokenCode: "resp = requests.post(url, timeout=2.0)\n# retry with backoff below\n",
	}

	got := Run(inc)
	if !strings.Contains(got, "explicit timeout") {
		t.Fatalf("expected timeout observation, got: %q", got)
	}
	if strings.Contains(got, "does not mention retries") {
		t.Fatalf("retry observation should be suppressed when snippet mentions backoff, got: %q", got)
	}
}

func TestRun_HighLatency(t *testing.T) {
	inc := model.Incident{
		Trace:      model.PerfTrace{LatencySeconds: ptr(12.5)},
		BrokenCode: "retry loop with backoff",
	}

	got := Run(inc)
	if !strings.Contains(got, "latency above 10 seconds") {
		t.Fatalf("expected latency observation, got: %q", got)
	}
}

func TestRun_LatencyAtThresholdIgnored(t *testing.T) {
	inc := model.Incident{
		Trace:      model.PerfTrace{LatencySeconds: ptr(10.0)},
		BrokenCode: "retry loop with backoff",
	}

	got := Run(inc)
	if strings.Contains(got, "latency above") {
		t.Fatalf("latency of exactly 10s should not warn, got: %q", got)
	}
}

func TestRun_MissingRetries(t *testing.T) {
	inc := model.Incident{
		BrokenCode: "resp = requests.post(url)\nresp.raise_for_status()\n",
	}

	got := Run(inc)
	if !strings.Contains(got, "does not mention retries") {
		t.Fatalf("expected retry observation, got: %q", got)
	}
}

func TestRun_NoFindings(t *testing.T) {
	inc := model.Incident{
		Errors:     model.ErrorRecord{ErrorType: "UnknownError"},
		BrokenCode: "carefully retries with exponential backoff",
	}

	got := Run(inc)
	if !strings.Contains(got, "No obvious issues") {
		t.Fatalf("expected fallback observation, got: %q", got)
	}
}

func TestRun_CombinesObservations(t *testing.T) {
	inc := model.Incident{
		Errors:     model.ErrorRecord{ErrorType: "TimeoutError"},
		Trace:      model.PerfTrace{LatencySeconds: ptr(30)},
		BrokenCode: "requests.post(url, timeout=2.0)",
	}

	got := Run(inc)
	for _, want := range []string{"explicit timeout", "latency above", "does not mention retries"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected combined summary to contain %q, got: %q", want, got)
		}
	}
}
