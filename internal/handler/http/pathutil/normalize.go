// Package pathutil provides URL path helpers for HTTP handlers and
// metrics label normalization.
package pathutil

import (
	"regexp"
	"strings"
)

// pathPattern pairs a route regex with its normalized template.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// pathPatterns lists dynamic routes, most specific first. Pre-compiled
// so normalization stays cheap on the hot path.
var pathPatterns = []*pathPattern{
	{pattern: regexp.MustCompile(`^/summaries/\d+$`), template: "/summaries/:id"},
}

// NormalizePath collapses ID-bearing paths to templates so metric
// labels stay bounded. /summaries/123 becomes /summaries/:id; static
// paths like /health and /metrics pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}

	return path
}
