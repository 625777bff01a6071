// Package http provides an HTTP-based implementation of clipper.Fetcher
// for fetching raw page bytes and images from target web servers.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/clipper"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a realistic browser User-Agent; many sites serve
// degraded or empty pages to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxBodyBytes caps how much of a response is read (10 MB).
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements clipper.Fetcher at compile time.
var _ clipper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw response bytes from URLs. It does not execute
// JavaScript; pair it with a Renderer for script-rendered sites.
type Fetcher struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	acceptLanguage string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAcceptLanguage overrides the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.acceptLanguage = lang
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:        DefaultFetchTimeout,
		userAgent:      DefaultUserAgent,
		acceptLanguage: "en-US,en;q=0.9",
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a GET against the URL and returns the raw body bytes
// together with the Content-Type header. Status classes map to error
// codes: 429 is ERATELIMIT, 5xx is EUNAVAILABLE (both retryable), and
// any other non-2xx status is EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*clipper.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, clipper.Errorf(clipper.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		// Cancellation must stay distinct from transient failures.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, clipper.Errorf(clipper.ECANCELED, "fetch canceled: %s", url)
		}
		return nil, clipper.Errorf(clipper.EUNAVAILABLE, "connection failed for %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, clipper.Errorf(clipper.ERATELIMIT, "HTTP 429 for %s", url)
	case resp.StatusCode >= 500:
		return nil, clipper.Errorf(clipper.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, clipper.Errorf(clipper.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, clipper.Errorf(clipper.ECANCELED, "fetch canceled: %s", url)
		}
		return nil, clipper.Errorf(clipper.EUNAVAILABLE, "reading body failed for %s: %v", url, err)
	}

	return &clipper.FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
