// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the PubMed/Entrez fetch stage.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs requested from ESearch
	// (retmax, default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key. Raises the rate limit from
	// 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is the contact address sent as the Entrez email parameter,
	// per NCBI usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is the Entrez tool name sent with every request.
	Tool string `json:"tool" yaml:"tool"`

	// FetchDelay is the delay between consecutive EFetch chunk requests
	// (default 350ms, keeps unauthenticated clients under 3 req/s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// MaxRetries bounds retries on HTTP 429 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ExportFormat selects the output file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Path is the output file path. Empty means render to the console.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Format selects csv or xlsx output.
	Format ExportFormat `json:"format" yaml:"format"`
}
