package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arun3676/llm911/internal/config"
	"github.com/arun3676/llm911/internal/httpclient"
	"github.com/arun3676/llm911/internal/incident"
)

// errNoIncident is returned when analysis is requested before a load.
var errNoIncident = errors.New("sample incident not loaded yet")

// apiError is the JSON error body every failing endpoint returns.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps typed errors to HTTP statuses. fallback is used for errors
// no mapping claims (transport failures from an upstream call, internal bugs).
func writeError(w http.ResponseWriter, err error, fallback int) {
	status := fallback
	code := "UPSTREAM_ERROR"
	if fallback == http.StatusInternalServerError {
		code = "INTERNAL_ERROR"
	}

	var nf *incident.NotFoundError
	var pe *incident.ParseError
	var mk *config.MissingKeyError
	var ae *httpclient.APIError

	switch {
	case errors.Is(err, errNoIncident):
		status, code = http.StatusConflict, "NO_INCIDENT"
	case errors.As(err, &nf):
		status, code = http.StatusNotFound, "SAMPLE_NOT_FOUND"
	case errors.As(err, &pe):
		status, code = http.StatusUnprocessableEntity, "SAMPLE_PARSE_ERROR"
	case errors.As(err, &mk):
		status, code = http.StatusServiceUnavailable, "NOT_CONFIGURED"
	case errors.As(err, &ae):
		status, code = http.StatusBadGateway, "UPSTREAM_ERROR"
	}

	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: err.Error()}})
}
