package twitter

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// Client is the Twitter API v2 client.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *ratelimit.Limiter
	mode    authMode
	cfg     ClientConfig

	mu     sync.Mutex
	userID string
}

// NewClient creates a client for the configured credentials.
// Missing or invalid credentials are not an error here; they fail on first use.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	mode := selectAuthMode(cfg.Credentials)
	hc, err := newAuthClient(cfg, mode)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}

	slog.Debug("twitter client ready", slog.String("auth", mode.String()), slog.String("base_url", cfg.BaseURL))
	return &Client{
		http:    hc,
		limiter: ratelimit.NewLimiter(cfg.RateLimit),
		mode:    mode,
		cfg:     cfg,
	}, nil
}

// AuthMode reports which signing scheme the client uses: "oauth1" or "bearer".
func (c *Client) AuthMode() string {
	return c.mode.String()
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(endpoint string, success, rateLimited bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(endpoint, success, rateLimited)
	}
}

// cachedUserID returns the authenticated user's id if already resolved.
func (c *Client) cachedUserID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID, c.userID != ""
}

func (c *Client) setUserID(id string) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}
