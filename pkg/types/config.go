// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "caselaw-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the citation search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the CourtListener API token, sent as
	// "Authorization: Token <key>" when non-empty.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the maximum number of results per endpoint query (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MinRequestInterval is the minimum delay between any two outbound
	// requests, measured end-to-start (default 1s).
	MinRequestInterval time.Duration `json:"min_request_interval" yaml:"min_request_interval"`

	// MaxRetries is the retry ceiling for rate-limited responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LibraryConfig holds settings for the local research library.
type LibraryConfig struct {
	// LibraryDir is the base directory for the library (contains the
	// SQLite database and export files).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Library LibraryConfig `json:"library" yaml:"library"`
}
