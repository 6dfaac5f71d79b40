package model

import "time"

// Report is the output of one analysis run.
type Report struct {
	ID             string    `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Model          string    `json:"model"`
	Text           string    `json:"text"`
	CodeReview     string    `json:"code_review,omitempty"`
	ProviderStatus string    `json:"provider_status,omitempty"`
}

// Sandbox is the handle returned by the provisioning service.
type Sandbox struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
