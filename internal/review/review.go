// Package review performs a small rule-based review of the code related to an
// incident. No model involved: just the obvious checks an experienced reviewer
// would run before reading anything else.
package review

import (
	"strings"

	"github.com/arun3676/llm911/internal/model"
)

// latencyWarnSeconds is the traced latency above which calls should be
// treated as retriable rather than exceptional.
const latencyWarnSeconds = 10.0

// Run inspects the incident's code snippet against the derived error type and
// traced latency, and returns one combined summary string.
func Run(inc model.Incident) string {
	var observations []string

	snippet := inc.BrokenCode
	snippetLower := strings.ToLower(snippet)

	if inc.Errors.ErrorType == "TimeoutError" && strings.Contains(snippet, "timeout=") {
		observations = append(observations,
			"The incident is a TimeoutError and the code sets an explicit timeout; "+
				"that timeout is probably too low for real-world LLM latency.")
	}

	if lat := inc.Trace.LatencySeconds; lat != nil && *lat > latencyWarnSeconds {
		observations = append(observations,
			"The trace shows latency above 10 seconds; calls are slow "+
				"and should be treated as retriable.")
	}

	if !strings.Contains(snippetLower, "retry") && !strings.Contains(snippetLower, "backoff") {
		observations = append(observations,
			"The code does not mention retries or backoff; consider adding retries "+
				"with backoff around the external LLM call.")
	}

	if len(observations) == 0 {
		observations = append(observations,
			"No obvious issues detected in this short snippet, but double-check "+
				"timeouts, retries, and latency handling.")
	}

	return strings.Join(observations, " ")
}
