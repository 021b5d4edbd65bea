// Package fetcher fetches documents over HTTP and extracts their
// readable article text for summarization.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"content-summarizer/internal/usecase/ingest"
)

// validateURL checks a URL before any request is made. Only http and
// https are allowed, and with denyPrivateIPs set the hostname must not
// resolve to a private, loopback or link-local address. The same check
// runs against every redirect target.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ingest.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ingest.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ingest.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// Resolve before fetching so attacker-controlled hostnames cannot
	// point the fetcher at the internal network.
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ingest.ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ingest.ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether ip is loopback, private or link-local,
// for both IPv4 and IPv6.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
