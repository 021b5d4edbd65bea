// Package ingest turns a document source (raw text or a URL) into
// pipeline input. URL ingestion fetches the page, extracts the article
// body, and validates that enough text survived extraction to be worth
// summarizing.
package ingest

import (
	"context"
	"errors"
)

// ContentFetcher fetches a page and extracts its readable article text.
//
// Implementations must prevent SSRF (validate the URL and every
// redirect target), enforce a response size limit, and respect the
// context for cancellation. Transient failures may be retried by the
// caller; implementations should not retry internally.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Sentinel errors for content fetching. They let callers distinguish
// permanent failures (bad URL, blocked target) from transient ones.
var (
	// ErrInvalidURL indicates a malformed URL or unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private, loopback
	// or link-local address.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrExtractionFailed indicates no readable article text could be
	// extracted from the fetched page.
	ErrExtractionFailed = errors.New("content extraction failed")
)
