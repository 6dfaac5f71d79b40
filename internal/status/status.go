// Package status checks the LLM provider's public status page so outage
// context can be folded into the incident report. The check is best-effort:
// any failure degrades to a "skipping" summary, never an error.
package status

import (
	"context"
	"log/slog"
	"strings"

	"github.com/arun3676/llm911/internal/httpclient"
)

const skippedSummary = "Provider status check skipped."

var warningKeywords = []string{"degraded", "latency", "incident", "outage"}

// statuspage-style summary endpoint payload (/api/v2/status.json).
type pageStatus struct {
	Status struct {
		Indicator   string `json:"indicator"` // none, minor, major, critical
		Description string `json:"description"`
	} `json:"status"`
}

// Checker fetches and classifies a provider status page.
type Checker struct {
	client *httpclient.Client
	url    string
}

// New creates a Checker for the given status page URL. An empty URL disables
// the check; Summary then always returns the skipped message.
func New(url string) *Checker {
	c := &Checker{url: url}
	if url != "" {
		c.client = httpclient.New(url, "")
	}
	return c
}

// Summary returns a one-line human-readable statement about provider health.
func (c *Checker) Summary(ctx context.Context) string {
	if c.client == nil {
		return skippedSummary
	}

	var page pageStatus
	if err := c.client.GetJSON(ctx, "", nil, &page); err != nil {
		slog.Warn("provider status check failed", "url", c.url, "error", err)
		return skippedSummary
	}

	return classify(page.Status.Indicator, page.Status.Description)
}

// classify maps the page payload to a summary line. Anything other than a
// clean "none" indicator, or a description mentioning trouble, is a warning.
func classify(indicator, description string) string {
	descLower := strings.ToLower(description)
	troubled := indicator != "" && indicator != "none"
	if !troubled {
		for _, kw := range warningKeywords {
			if strings.Contains(descLower, kw) {
				troubled = true
				break
			}
		}
	}

	if troubled {
		if description != "" {
			return "Provider status warning: " + description
		}
		return "Provider status warning: status page reports possible issues."
	}
	return "Provider status: no issues reported on the provider status page."
}
