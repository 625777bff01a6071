// Package slog provides logging decorators for clipper services using
// the standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipper"
)

// Ensure LoggingFetcher implements clipper.Fetcher.
var _ clipper.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   clipper.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next clipper.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*clipper.FetchResult, error) {
	begin := time.Now()
	result, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	f.logger.Info("fetch",
		"url", url,
		"status", result.StatusCode,
		"bytes", len(result.Body),
		"duration", time.Since(begin),
	)
	return result, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
