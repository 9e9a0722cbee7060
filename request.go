package biome

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// do executes a request with jitter, rate limiting and retries on transient failures.
// Auth, not-found and other client errors are returned without retrying.
func (c *Client) do(ctx context.Context, ep Endpoint, url string, payload []byte) ([]byte, error) {
	endpoint := ep.Name

	// Anti-fingerprint jitter
	if err := c.jitter(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := range c.cfg.MaxRetries {
		if attempt > 0 {
			delay := c.backoff(attempt)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !c.session.allowRequest(endpoint) {
			c.recordAPICall(endpoint, false, true)
			until := c.session.endpointAvailableAt(endpoint)
			slog.Warn("endpoint rate limited locally", slog.String("endpoint", endpoint), slog.Time("until", until))
			return nil, fmt.Errorf("%s until %s: %w", endpoint, until.Format(time.RFC3339), ErrRateLimited)
		}

		body, respHdrs, status, err := c.doRequest(ep.Method, url, payload)
		if err != nil {
			c.recordAPICall(endpoint, false, false)
			if isProxyError(err) {
				slog.Warn("proxy error", slog.String("endpoint", endpoint), slog.String("proxy", stealth.MaskProxy(c.cfg.Proxy)), slog.Any("error", err))
			} else {
				slog.Warn("request failed", slog.String("endpoint", endpoint), slog.Int("attempt", attempt+1), slog.Any("error", err))
			}
			lastErr = err
			continue
		}

		switch class := classifyError(status, body); class {
		case errNone:
			c.recordAPICall(endpoint, true, false)
			return body, nil

		case errRateLimited:
			c.recordAPICall(endpoint, false, true)
			until := parseRateLimitReset(respHdrs)
			c.session.markEndpointRateLimited(endpoint, until)
			slog.Warn("rate limited", slog.String("endpoint", endpoint), slog.Time("until", until))
			return nil, newAPIError(endpoint, status, body, class)

		case errTransient:
			c.recordAPICall(endpoint, false, false)
			slog.Warn("transient API error, retrying",
				slog.String("endpoint", endpoint),
				slog.Int("status", status),
				slog.Int("attempt", attempt+1),
				slog.String("body", truncateBytes(body, 500)))
			lastErr = newAPIError(endpoint, status, body, class)
			continue

		default:
			c.recordAPICall(endpoint, false, false)
			return nil, newAPIError(endpoint, status, body, class)
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%s failed after %d attempts: %w", endpoint, c.cfg.MaxRetries, lastErr)
	}
	return nil, fmt.Errorf("%s failed after %d attempts", endpoint, c.cfg.MaxRetries)
}

// isProxyError returns true if the error looks like a proxy connectivity failure.
func isProxyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "proxy") ||
		strings.Contains(msg, "SOCKS") ||
		strings.Contains(msg, "tunnel")
}
