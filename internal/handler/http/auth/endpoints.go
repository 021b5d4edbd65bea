package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// Justification for each public endpoint:
// - /health, /ready, /live: Required for orchestration health checks (Kubernetes, Docker, monitoring)
// - /metrics: Required for Prometheus scraping
// - /auth/token: Token generation endpoint (can't require token to get token)
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
// - Endpoints ending with '/' use prefix matching
// - Endpoints without '/' require exact match, trailing slash, or query params only
//   (e.g., /health matches /health?x=1 but not /health/detail or /healthcheck)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint {
			return true
		}
		if path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
