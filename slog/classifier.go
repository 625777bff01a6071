package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipper"
)

// Ensure LoggingClassifier implements clipper.Classifier.
var _ clipper.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with verdict logging.
type LoggingClassifier struct {
	next   clipper.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next clipper.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Assess delegates to the wrapped classifier and logs the verdict.
func (c *LoggingClassifier) Assess(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error) {
	begin := time.Now()
	verdict, err := c.next.Assess(ctx, input)
	if err != nil {
		c.logger.Error("assess",
			"url", input.URL,
			"duration", time.Since(begin),
			"err", err,
		)
		return verdict, err
	}
	c.logger.Info("assess",
		"url", input.URL,
		"tier", string(verdict.Tier),
		"reason", verdict.Reason,
		"words", input.WordCount,
		"duration", time.Since(begin),
	)
	return verdict, nil
}
