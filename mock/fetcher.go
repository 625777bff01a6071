package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of clipper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*clipper.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*clipper.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
