// Package web serves the demo UI and the JSON API behind its three actions:
// load the sample incident, run the analysis, provision a sandbox.
package web

import (
	_ "embed"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arun3676/llm911/internal/config"
	"github.com/arun3676/llm911/internal/incident"
	"github.com/arun3676/llm911/internal/investigate"
	"github.com/arun3676/llm911/internal/model"
	"github.com/arun3676/llm911/internal/report"
	"github.com/arun3676/llm911/internal/sandbox"
)

//go:embed ui/index.html
var uiIndexHTML []byte

// Server holds the demo's single-user state: the most recently loaded
// incident. The mutex exists because the HTTP server is concurrent even
// though the demo's flow is strictly click-by-click.
type Server struct {
	dataDir      string
	investigator *investigate.Investigator
	sandbox      *sandbox.Client // nil when the feature is disabled
	sink         report.Sink

	mu      sync.Mutex
	current *model.Incident
}

// NewServer wires the demo's components. sandboxClient may be nil; the
// endpoint then reports the feature as not configured.
func NewServer(dataDir string, inv *investigate.Investigator, sandboxClient *sandbox.Client, sink report.Sink) *Server {
	if sink == nil {
		sink = report.Nop{}
	}
	return &Server{
		dataDir:      dataDir,
		investigator: inv,
		sandbox:      sandboxClient,
		sink:         sink,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("POST /api/incident/load", s.handleLoad)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/sandbox", s.handleSandbox)
	return withRequestID(mux)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	// Single embedded file keeps the binary self-contained.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(uiIndexHTML)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": config.Version})
}

// loadResponse summarizes what was loaded without echoing both documents.
type loadResponse struct {
	ErrorType      string   `json:"error_type"`
	LatencySeconds *float64 `json:"latency_seconds"`
	HasBrokenCode  bool     `json:"has_broken_code"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	inc, err := incident.Load(s.dataDir)
	if err != nil {
		// Prior loaded state stays untouched on failure.
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.current = &inc
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, loadResponse{
		ErrorType:      inc.Errors.ErrorType,
		LatencySeconds: inc.Trace.LatencySeconds,
		HasBrokenCode:  inc.BrokenCode != "",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		writeError(w, errNoIncident, http.StatusInternalServerError)
		return
	}

	rep, err := s.investigator.Analyze(r.Context(), *current)
	if err != nil {
		writeError(w, err, http.StatusBadGateway)
		return
	}

	if err := s.sink.Write(rep); err != nil {
		slog.Warn("report sink write failed", "report_id", rep.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSandbox(w http.ResponseWriter, r *http.Request) {
	if s.sandbox == nil {
		writeError(w, &config.MissingKeyError{
			Key:     "LLM911_DAYTONA_API_KEY",
			Feature: "sandbox provisioning",
		}, http.StatusServiceUnavailable)
		return
	}

	sb, err := s.sandbox.Create(r.Context())
	if err != nil {
		writeError(w, err, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, sb)
}

// withRequestID tags every request with a uuid, echoes it in X-Request-ID,
// and logs one line per request.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		slog.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
