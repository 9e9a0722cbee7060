package biome

import (
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

const defaultBaseURL = "https://api.biome.fm"

// ClientConfig holds all configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API root. Default: https://api.biome.fm
	BaseURL string

	// Token is the pre-issued bearer token sent with every request.
	Token string

	// UserAgent overrides the browser profile's User-Agent.
	UserAgent string

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// RateLimit configures per-endpoint rate limiting.
	RateLimit ratelimit.Config

	// MaxRetries is the number of attempts for retryable failures.
	MaxRetries int

	// PageSize is the number of entries requested per feed page.
	PageSize int

	// MetricsHook is called on each API request for external metrics collection.
	// endpoint is the operation name, success and rateLimited indicate the outcome.
	MetricsHook func(endpoint string, success, rateLimited bool)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 20
	}
}
