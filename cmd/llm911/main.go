package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arun3676/llm911/internal/config"
	"github.com/arun3676/llm911/internal/investigate"
	"github.com/arun3676/llm911/internal/llm"
	"github.com/arun3676/llm911/internal/logging"
	"github.com/arun3676/llm911/internal/report"
	"github.com/arun3676/llm911/internal/sandbox"
	"github.com/arun3676/llm911/internal/status"
	"github.com/arun3676/llm911/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logging.Init(cfg.Report.Sink == "stdout", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// LLM client only when a key is present; analysis degrades to a visible
	// "not configured" message otherwise.
	var gen llm.Generator
	if cfg.LLM.APIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			log.Fatalf("failed to create LLM client: %v", err)
		}
		gen = gemini
	} else {
		slog.Warn("LLM911_GEMINI_API_KEY not set; analysis is disabled")
	}

	var sandboxClient *sandbox.Client
	if cfg.Sandbox.APIKey != "" {
		sandboxClient = sandbox.New(cfg.Sandbox.Endpoint, cfg.Sandbox.APIKey, cfg.RepoURL)
	} else {
		slog.Warn("LLM911_DAYTONA_API_KEY not set; sandbox provisioning is disabled")
	}

	sink, err := report.FromConfig(cfg.Report)
	if err != nil {
		log.Fatalf("failed to create report sink: %v", err)
	}
	defer sink.Close()

	inv := investigate.New(gen, cfg.LLM.Model, status.New(cfg.Status.URL))
	srv := web.NewServer(cfg.DataDir, inv, sandboxClient, sink)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.Addr, err)
	}

	slog.Info("llm911: listening", "addr", cfg.Addr, "version", config.Version)
	if err := serve(ctx, httpSrv, ln, cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// serve runs srv on ln until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			_ = srv.Close()
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
