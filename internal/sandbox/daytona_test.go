package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arun3676/llm911/internal/httpclient"
)

const repoURL = "https://github.com/arun3676/LLM-911.git"

func TestCreate_Success(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"sb-42","url":"https://app.daytona.io/workspaces/daytonaio/sb-42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "dk_test", repoURL)
	sb, err := c.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if sb.ID != "sb-42" {
		t.Fatalf("expected id 'sb-42', got %q", sb.ID)
	}
	if sb.URL == "" {
		t.Fatal("expected non-empty workspace URL")
	}
	if gotAuth != "Bearer dk_test" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/sandbox" {
		t.Fatalf("expected path '/sandbox', got %q", gotPath)
	}
	if gotBody["repository"] != repoURL {
		t.Fatalf("expected fixed repository URL in body, got %v", gotBody)
	}
}

func TestCreate_DashboardURLFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"sb-7"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "dk_test", repoURL)
	sb, err := c.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sb.URL != "https://app.daytona.io/workspaces/daytonaio/sb-7" {
		t.Fatalf("expected dashboard fallback URL, got %q", sb.URL)
	}
}

func TestCreate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`internal error`))
	}))
	defer srv.Close()

	c := New(srv.URL, "dk_test", repoURL)
	start := time.Now()
	_, err := c.Create(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *httpclient.APIError, got %T: %v", err, err)
	}
	// Creation is not idempotent; a failed attempt must not be replayed.
	if elapsed := time.Since(start); elapsed >= time.Second {
		t.Fatalf("expected immediate failure without retries, elapsed %v", elapsed)
	}
}

func TestCreate_RejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`unauthorized`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", repoURL)
	_, err := c.Create(context.Background())
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *httpclient.APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 401 {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestCreate_MissingWorkspaceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "dk_test", repoURL)
	if _, err := c.Create(context.Background()); err == nil {
		t.Fatal("expected error for response without workspace id")
	}
}
