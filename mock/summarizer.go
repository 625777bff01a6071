package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of clipper.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, title, url, snippet string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, title, url, snippet string) (string, error) {
	return s.SummarizeFn(ctx, title, url, snippet)
}
