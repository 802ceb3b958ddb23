package twitter

import (
	"os"
	"time"

	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// Environment variables holding the API credentials.
const (
	EnvAPIKey            = "TWITTER_API_KEY"
	EnvAPISecret         = "TWITTER_API_SECRET"
	EnvAccessToken       = "TWITTER_ACCESS_TOKEN"
	EnvAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"
	EnvBearerToken       = "TWITTER_BEARER_TOKEN"
)

// Credentials are the five secrets issued by the developer portal.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string
}

// CredentialsFromEnv reads credentials from the process environment.
// Missing variables are left empty; bad credentials only fail on first request.
func CredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:            os.Getenv(EnvAPIKey),
		APISecret:         os.Getenv(EnvAPISecret),
		AccessToken:       os.Getenv(EnvAccessToken),
		AccessTokenSecret: os.Getenv(EnvAccessTokenSecret),
		BearerToken:       os.Getenv(EnvBearerToken),
	}
}

// ClientConfig holds all configuration for the Twitter client.
type ClientConfig struct {
	// Credentials authenticate every request.
	Credentials Credentials

	// BaseURL overrides the API host. Default: https://api.twitter.com
	BaseURL string

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration

	// Proxy is an optional HTTP(S) proxy URL for outgoing requests.
	Proxy string

	// RateLimit is passed to the per-endpoint limiter. The client only uses the
	// limiter to remember 429 windows; request quotas are never counted, so
	// RequestsPerWindow has no effect.
	RateLimit ratelimit.Config

	// MetricsHook is called on each API request for external metrics collection.
	// endpoint is the operation name, success and rateLimited indicate the outcome.
	MetricsHook func(endpoint string, success, rateLimited bool)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = apiBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
}
