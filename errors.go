package biome

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrNotRetryable = errors.New("cursor is not in an errored state")
)

// APIError is a non-success response from the API.
type APIError struct {
	Endpoint string
	Status   int
	Code     string
	Message  string

	class errorClass
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s HTTP %d", e.Endpoint, e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap maps the error onto ErrUnauthorized, ErrNotFound or ErrRateLimited.
func (e *APIError) Unwrap() error {
	switch e.class {
	case errAuth:
		return ErrUnauthorized
	case errNotFound:
		return ErrNotFound
	case errRateLimited:
		return ErrRateLimited
	}
	return nil
}

// errorClass categorizes API responses for targeted handling.
type errorClass int

const (
	errNone        errorClass = iota
	errAuth                   // 401, 403, token_expired
	errNotFound               // 404
	errRateLimited            // 429, rate_limited
	errTransient              // 5xx, internal
	errClient                 // other 4xx
)

// classifyError inspects status and body. A body-level error code wins over the status.
func classifyError(status int, body []byte) errorClass {
	code, _ := parseAPIError(body)
	switch code {
	case "token_expired", "unauthorized", "forbidden":
		return errAuth
	case "not_found":
		return errNotFound
	case "rate_limited":
		return errRateLimited
	case "internal":
		return errTransient
	}

	switch {
	case status >= 200 && status < 300:
		return errNone
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errAuth
	case status == http.StatusNotFound:
		return errNotFound
	case status == http.StatusTooManyRequests:
		return errRateLimited
	case status >= 500:
		return errTransient
	}
	return errClient
}

func newAPIError(endpoint string, status int, body []byte, class errorClass) *APIError {
	code, message := parseAPIError(body)
	if code == "" && message == "" {
		message = truncateBytes(body, 200)
	}
	return &APIError{
		Endpoint: endpoint,
		Status:   status,
		Code:     code,
		Message:  message,
		class:    class,
	}
}

// parseRateLimitReset reads Retry-After (seconds) or x-ratelimit-reset (unix seconds).
// Falls back to 15 minutes from now if both are missing or invalid.
func parseRateLimitReset(headers map[string]string) time.Time {
	if v := headers["retry-after"]; v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	if ts, err := strconv.ParseInt(headers["x-ratelimit-reset"], 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
