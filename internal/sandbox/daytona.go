// Package sandbox provisions isolated development workspaces through the
// Daytona API so incident fixes can be reproduced outside production.
package sandbox

import (
	"context"
	"fmt"

	"github.com/arun3676/llm911/internal/httpclient"
	"github.com/arun3676/llm911/internal/model"
)

const defaultEndpoint = "https://app.daytona.io/api"

// dashboardURLFormat is the fallback workspace URL when the API response
// carries no URL of its own.
const dashboardURLFormat = "https://app.daytona.io/workspaces/daytonaio/%s"

// Client creates sandboxes for a fixed source repository.
type Client struct {
	http    *httpclient.Client
	repoURL string
}

type createRequest struct {
	Repository string `json:"repository"`
}

type createResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// New creates a sandbox client. endpoint defaults to the hosted Daytona API
// when empty; repoURL is the repository every workspace is created from.
func New(endpoint, apiKey, repoURL string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		http:    httpclient.New(endpoint, apiKey),
		repoURL: repoURL,
	}
}

// Create provisions one workspace and returns its identifier and dashboard
// URL. No readiness polling, no teardown: the handle is all the demo needs.
func (c *Client) Create(ctx context.Context) (model.Sandbox, error) {
	var resp createResponse
	err := c.http.PostJSON(ctx, "/sandbox", createRequest{Repository: c.repoURL}, &resp)
	if err != nil {
		return model.Sandbox{}, fmt.Errorf("sandbox: create: %w", err)
	}
	if resp.ID == "" {
		return model.Sandbox{}, fmt.Errorf("sandbox: provisioning service returned no workspace id")
	}

	url := resp.URL
	if url == "" {
		url = fmt.Sprintf(dashboardURLFormat, resp.ID)
	}
	return model.Sandbox{ID: resp.ID, URL: url}, nil
}
