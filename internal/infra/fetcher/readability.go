package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"content-summarizer/internal/resilience/circuitbreaker"
	"content-summarizer/internal/usecase/ingest"
)

const fetchUserAgent = "content-summarizer/1.0"

// ReadabilityFetcher implements ingest.ContentFetcher using the
// Mozilla Readability algorithm, with a plain paragraph extraction
// fallback for pages Readability cannot score.
//
// Safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a fetcher with the given limits. The
// HTTP client enforces TLS 1.2+, the configured redirect ceiling, and
// SSRF validation of every redirect target.
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	fetcher := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		config:         config,
	}

	fetcher.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ingest.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return fetcher
}

// FetchContent fetches the page at urlStr and returns its extracted
// article text. The URL is validated before the request, the request
// runs through a circuit breaker, and the response body is size
// limited while reading.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ingest.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", ingest.ErrTimeout, f.config.Timeout)
		}
		// Surface redirect validation errors without the url.Error wrapper
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ingest.ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// The final URL may differ from the requested one after redirects
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), parsedURL)
	if err == nil && article.TextContent != "" {
		return article.TextContent, nil
	}

	// Readability rejects pages without enough scoreable structure.
	// Plain paragraph text is still usable pipeline input.
	fallback, fbErr := extractParagraphs(htmlBytes)
	if fbErr != nil || fallback == "" {
		return "", fmt.Errorf("%w: no readable content found at %s", ingest.ErrExtractionFailed, urlStr)
	}

	slog.Debug("readability extraction empty, using paragraph fallback",
		slog.String("url", urlStr),
		slog.Int("fallback_length", len(fallback)))
	return fallback, nil
}

// extractParagraphs joins the text of all <p> elements in the page.
func extractParagraphs(htmlBytes []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.Join(parts, " "), nil
}
