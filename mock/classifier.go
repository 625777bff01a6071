package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of clipper.Classifier.
type Classifier struct {
	AssessFn func(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error)
}

func (c *Classifier) Assess(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error) {
	return c.AssessFn(ctx, input)
}
