package biome

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// doer is the transport surface used by the client. *stealth.BrowserClient implements it.
type doer interface {
	DoWithHeaderOrder(method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// Client is the top-level API client.
type Client struct {
	client  doer
	session *session
	cfg     ClientConfig

	jitter  func(ctx context.Context) error
	backoff func(attempt int) time.Duration
}

// NewClient creates a fully-wired API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	profile := stealth.BuiltinProfiles[0]
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(apiHeaderOrder),
		stealth.WithProfile(profile.TLSProfile),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = profile.UserAgent
	}
	return newClient(cfg, bc, ratelimit.NewLimiter(cfg.RateLimit), ua), nil
}

// newClient assembles a client around an existing transport and limiter.
func newClient(cfg ClientConfig, d doer, rl limiter, userAgent string) *Client {
	cfg.defaults()
	return &Client{
		client: d,
		session: &session{
			token:       cfg.Token,
			userAgent:   userAgent,
			rateLimiter: rl,
		},
		cfg:     cfg,
		jitter:  stealth.DefaultJitter.Sleep,
		backoff: stealth.DefaultBackoff.Duration,
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.session.setToken(token)
}

// doRequest executes a single request with the session's headers.
func (c *Client) doRequest(method, urlStr string, payload []byte) ([]byte, map[string]string, int, error) {
	token, ua := c.session.credentials()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	return c.client.DoWithHeaderOrder(method, urlStr, apiHeaders(token, ua), body, apiHeaderOrder)
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(endpoint string, success, rateLimited bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(endpoint, success, rateLimited)
	}
}
