package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of clipper.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string) ([]clipper.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string) ([]clipper.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
