package biome

import (
	"sync"
	"time"
)

// limiter is the subset of ratelimit.Limiter the client relies on.
type limiter interface {
	Allow(endpoint string) bool
	MarkRateLimited(endpoint string, until time.Time)
	AvailableAt(endpoint string) time.Time
}

// session holds the credentials and per-endpoint rate limiter for one token.
type session struct {
	mu          sync.Mutex
	token       string
	userAgent   string
	rateLimiter limiter
}

// credentials returns a snapshot of (token, userAgent) under lock.
func (s *session) credentials() (token, userAgent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.userAgent
}

// setToken swaps the bearer token, e.g. after the caller refreshed it.
func (s *session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// allowRequest checks if the given endpoint may be called now.
func (s *session) allowRequest(endpoint string) bool {
	s.mu.Lock()
	rl := s.rateLimiter
	s.mu.Unlock()
	if rl == nil {
		return true
	}
	return rl.Allow(endpoint)
}

// markEndpointRateLimited blocks an endpoint until the given time.
func (s *session) markEndpointRateLimited(endpoint string, until time.Time) {
	s.mu.Lock()
	rl := s.rateLimiter
	s.mu.Unlock()
	if rl == nil {
		return
	}
	rl.MarkRateLimited(endpoint, until)
}

// endpointAvailableAt returns when the endpoint will accept requests again.
func (s *session) endpointAvailableAt(endpoint string) time.Time {
	s.mu.Lock()
	rl := s.rateLimiter
	s.mu.Unlock()
	if rl == nil {
		return time.Time{}
	}
	return rl.AvailableAt(endpoint)
}
