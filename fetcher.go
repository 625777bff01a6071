package clipper

import "context"

// FetchResult holds the raw bytes of a fetched page together with the
// response Content-Type header, which the encoding resolver consults
// before any charset sniffing.
type FetchResult struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// Fetcher retrieves raw response bytes from URLs over plain HTTP.
// Implementations report HTTP 429 as ERATELIMIT, 5xx and connection
// errors as EUNAVAILABLE, and other 4xx as EINVALID so that callers can
// restrict retries to transient classes.
type Fetcher interface {
	// Fetch performs a GET against the URL. The context controls
	// timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases client resources.
	Close() error
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}

// Renderer retrieves the serialized DOM of a URL after JavaScript has
// run. It is an optional capability: a nil Renderer simply causes the
// render-fallback heuristic to keep the original HTML.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle, and
	// returns the rendered HTML.
	Render(ctx context.Context, url string) (string, error)

	// Close releases browser resources.
	Close() error
}
