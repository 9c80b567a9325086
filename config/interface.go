package config

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// LLMSettings holds the connection settings for the upstream model provider.
// APIKey is always sourced from the environment, never from the config file.
type LLMSettings struct {
	BaseURL     string
	Model       string
	Temperature float64
	APIKey      string
}

type IConfig interface {
	// Core Server Settings
	ListenAddr() (string, error)
	ServerName() (string, error)
	ServerVersion() (string, error)
	LogLevel() (string, error)

	// HTTP Boundary Settings
	AllowedOrigins() ([]string, error) // CORS allow-list; absent-Origin requests always pass
	RateLimitRPM() (int, error)        // per-client requests per minute on API paths
	UploadMaxBytes() (int64, error)    // multipart upload size cap

	// Model Provider Settings
	LLM() (LLMSettings, error)

	// SSL Settings
	SSLEnabled() (bool, error)
	SSLMode() (string, error)          // Returns "manual" or "acme"
	SSLCertFile() (string, error)      // Path to certificate file (manual mode)
	SSLKeyFile() (string, error)       // Path to private key file (manual mode)
	SSLAcmeDomains() ([]string, error) // List of domains for ACME
	SSLAcmeEmail() (string, error)     // Contact email for ACME
	SSLAcmeCacheDir() (string, error)  // Directory to cache ACME certificates

	// Lifecycle & Status
	Status(ctx context.Context) error
	Close() error
}
