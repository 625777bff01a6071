// Package duckduckgo provides a clipper.SearchService that scrapes the
// DuckDuckGo HTML endpoint, which needs no API key.
package duckduckgo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipper"
)

// DefaultBaseURL is the keyless HTML search endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// defaultTimeout bounds a single search request.
const defaultTimeout = 15 * time.Second

// Ensure SearchService implements clipper.SearchService at compile time.
var _ clipper.SearchService = (*SearchService)(nil)

// SearchService retrieves search results by scraping the DuckDuckGo
// HTML interface.
type SearchService struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a SearchService.
type Option func(*SearchService)

// WithBaseURL overrides the search endpoint, mainly for testing.
func WithBaseURL(u string) Option {
	return func(s *SearchService) {
		s.baseURL = u
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *SearchService) {
		s.userAgent = ua
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SearchService) {
		s.client = c
	}
}

// NewSearchService creates a new DuckDuckGo-backed SearchService.
func NewSearchService(opts ...Option) *SearchService {
	s := &SearchService{
		client:    &http.Client{Timeout: defaultTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search submits the query and parses the result list. Returns EINVALID
// for an empty query, ERATELIMIT when DuckDuckGo throttles, and
// EUNAVAILABLE for transient network or server failures.
func (s *SearchService) Search(ctx context.Context, query string) ([]clipper.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, clipper.Errorf(clipper.EINVALID, "search query required")
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, clipper.Errorf(clipper.EINVALID, "building search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, clipper.Errorf(clipper.ECANCELED, "search canceled")
		}
		return nil, clipper.Errorf(clipper.EUNAVAILABLE, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return nil, clipper.Errorf(clipper.ERATELIMIT, "search throttled with HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, clipper.Errorf(clipper.EUNAVAILABLE, "search failed with HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, clipper.Errorf(clipper.EINVALID, "search failed with HTTP %d", resp.StatusCode)
	}

	return parseResults(resp.Body)
}

// parseResults extracts results from the HTML result list. Ads and
// results without a resolvable target URL are skipped.
func parseResults(r io.Reader) ([]clipper.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, clipper.Errorf(clipper.EINTERNAL, "parsing search results: %v", err)
	}

	var results []clipper.SearchResult
	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass("result--ad") {
			return
		}

		link := sel.Find(".result__title a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := resolveRedirect(href)
		if target == "" {
			return
		}

		results = append(results, clipper.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links into
// the target URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
