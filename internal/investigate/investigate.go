// Package investigate assembles the incident prompt and runs the analysis:
// rule-based code review, provider status, then one blocking LLM call.
package investigate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arun3676/llm911/internal/config"
	"github.com/arun3676/llm911/internal/llm"
	"github.com/arun3676/llm911/internal/model"
	"github.com/arun3676/llm911/internal/review"
	"github.com/arun3676/llm911/internal/status"
)

const systemPrompt = `You are LLM 911, an expert AI incident responder.

You will be given two JSON objects:
- One from an error-tracking tool describing an application or infrastructure incident.
- One from an LLM observability tool describing a model trace or monitoring context.

Your job is to carefully read both, correlate the information, and then
produce a concise but thorough incident report aimed at an on-call
engineer who is familiar with LLM systems.

The report MUST be plain text and structured with clear headings:
1) Root Cause
2) Fix Plan
3) Infra / Latency / Timeout Observations

Be specific and actionable. If some information is missing, call that
out explicitly and state reasonable assumptions.`

// Investigator turns a loaded incident into a report via the hosted LLM.
// A nil generator means the analysis feature is not configured.
type Investigator struct {
	gen     llm.Generator
	model   string
	checker *status.Checker
}

// New creates an Investigator. gen may be nil when no LLM API key is
// configured; Analyze then fails with a MissingKeyError before any network
// call is attempted.
func New(gen llm.Generator, modelID string, checker *status.Checker) *Investigator {
	if checker == nil {
		checker = status.New("")
	}
	return &Investigator{gen: gen, model: modelID, checker: checker}
}

// Analyze runs the full flow: code review, provider status, prompt assembly,
// one generation call. The returned report carries the LLM text verbatim.
func (v *Investigator) Analyze(ctx context.Context, inc model.Incident) (model.Report, error) {
	if v.gen == nil {
		return model.Report{}, &config.MissingKeyError{
			Key:     "LLM911_GEMINI_API_KEY",
			Feature: "incident analysis",
		}
	}

	reviewSummary := review.Run(inc)
	statusSummary := v.checker.Summary(ctx)

	prompt, err := BuildPrompt(inc, reviewSummary, statusSummary)
	if err != nil {
		return model.Report{}, err
	}

	text, err := v.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return model.Report{}, err
	}

	return model.Report{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Model:          v.model,
		Text:           text,
		CodeReview:     reviewSummary,
		ProviderStatus: statusSummary,
	}, nil
}

// BuildPrompt serializes both incident documents into fenced JSON blocks under
// the fixed instructional sections. Serialization is deterministic: decoded
// JSON maps marshal with sorted keys.
func BuildPrompt(inc model.Incident, reviewSummary, statusSummary string) (string, error) {
	errorsJSON, err := json.MarshalIndent(inc.Errors.Raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("investigate: marshal error log: %w", err)
	}
	traceJSON, err := json.MarshalIndent(inc.Trace.Raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("investigate: marshal trace: %w", err)
	}

	var b strings.Builder
	b.WriteString("Provider status summary:\n")
	b.WriteString(statusSummary)
	b.WriteString("\n\nHere is a review of the related source code:\n")
	b.WriteString(reviewSummary)
	b.WriteString("\n\nHere is the error-tracking incident JSON:\n```json\n")
	b.Write(errorsJSON)
	b.WriteString("\n```\n\nHere is the model trace JSON:\n```json\n")
	b.Write(traceJSON)
	b.WriteString("\n```\n")

	if inc.BrokenCode != "" {
		b.WriteString("\nHere is the related source code:\n```\n")
		b.WriteString(inc.BrokenCode)
		if !strings.HasSuffix(inc.BrokenCode, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	b.WriteString("\nUsing ONLY the information above and reasonable engineering judgment,\nwrite the incident report now.")
	return b.String(), nil
}
