// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the per-attempt HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent upstream (e.g. "books-explorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryConfig controls the bounded retry applied to upstream network failures.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BaseDelay is multiplied by the attempt number to get the wait after a
	// failed attempt (default 300ms).
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`
}

// HandlerConfig holds settings for the search handler.
type HandlerConfig struct {
	HTTPConfig  `yaml:",inline"`
	RetryConfig `yaml:",inline"`

	// Endpoint is the upstream volumes search URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// DefaultQuery replaces an empty query (default "node").
	DefaultQuery string `json:"default_query" yaml:"default_query"`

	// MaxItems caps the number of returned items (default 10).
	MaxItems int `json:"max_items" yaml:"max_items"`

	// SecretName is the secret-store key holding the API credential. Empty
	// disables the secret-store lookup.
	SecretName string `json:"secret_name" yaml:"secret_name"`

	// CORSOrigin is the Access-Control-Allow-Origin response header value.
	CORSOrigin string `json:"cors_origin" yaml:"cors_origin"`
}

// SecretStoreConfig selects and configures the secret store.
type SecretStoreConfig struct {
	// Region is the AWS region of the secret (default "ap-northeast-1").
	Region string `json:"region" yaml:"region"`

	// Dir, when set, replaces AWS Secrets Manager with a directory of
	// plain-text secret files.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// ServerConfig holds settings for the local HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AccessLogPath is the SQLite access log path. Empty disables recording.
	AccessLogPath string `json:"access_log" yaml:"access_log"`
}
