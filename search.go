package clipper

import "context"

// SearchResult is a single result returned by the search collaborator.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchService retrieves search results for a query. Implementations
// return typed errors: EUNAUTHORIZED for a missing or rejected key,
// ERATELIMIT for throttling, EUNAVAILABLE for transient network
// failures, and EINVALID for permanent HTTP failures.
type SearchService interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
