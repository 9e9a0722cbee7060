package biome

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint is one API operation.
type Endpoint struct {
	Name   string
	Method string
	// Path is a format string taking one escaped path segment.
	Path string
}

// Endpoints maps operation names to their method and path.
var Endpoints = map[string]Endpoint{
	"UserFeed":    {Name: "UserFeed", Method: http.MethodGet, Path: "/v1/users/%s/feed"},
	"EntryThread": {Name: "EntryThread", Method: http.MethodGet, Path: "/v1/entries/%s/thread"},
	"DeleteEntry": {Name: "DeleteEntry", Method: http.MethodDelete, Path: "/v1/entries/%s"},
	"React":       {Name: "React", Method: http.MethodPost, Path: "/v1/entries/%s/reactions"},
}

// URL returns the full URL for this endpoint under baseURL.
func (e Endpoint) URL(baseURL, segment string, query url.Values) string {
	u := strings.TrimRight(baseURL, "/") + fmt.Sprintf(e.Path, url.PathEscape(segment))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// endpointURL returns the URL for a named operation, or an error if unknown.
func (c *Client) endpointURL(operation, segment string, query url.Values) (Endpoint, string, error) {
	ep, ok := Endpoints[operation]
	if !ok {
		return Endpoint{}, "", fmt.Errorf("unknown operation: %s", operation)
	}
	return ep, ep.URL(c.cfg.BaseURL, segment, query), nil
}
