package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint resolves the rate limit configuration for a request. Exact
// path matches win over prefix matches (config paths ending in "/" match any
// path under them); no match returns nil and the caller falls back to the
// global default.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Probes and the static mode listing are never metered.
	if method == http.MethodGet && (path == "/health" || path == "/api/modes") {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefixMatch == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefixMatch = c
		}
	}
	return prefixMatch
}
