package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/mock"
	clipslog "github.com/fwojciec/clipper/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*clipper.FetchResult, error) {
				return &clipper.FetchResult{Body: []byte("<html>content</html>"), StatusCode: 200}, nil
			},
		}

		fetcher := clipslog.NewLoggingFetcher(inner, logger)
		result, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.Equal(t, []byte("<html>content</html>"), result.Body)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*clipper.FetchResult, error) {
				return nil, clipper.Errorf(clipper.EUNAVAILABLE, "network error")
			},
		}

		fetcher := clipslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "network error")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := clipslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}

func TestLoggingClassifier_Assess(t *testing.T) {
	t.Parallel()

	t.Run("logs the verdict", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Classifier{
			AssessFn: func(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error) {
				return clipper.Verdict{Tier: clipper.TierHigh, Reason: "no disqualifying signals"}, nil
			},
		}

		classifier := clipslog.NewLoggingClassifier(inner, logger)
		verdict, err := classifier.Assess(context.Background(), clipper.ClassifyInput{
			URL:       "https://example.com/page",
			WordCount: 300,
		})

		require.NoError(t, err)
		assert.Equal(t, clipper.TierHigh, verdict.Tier)
		output := buf.String()
		assert.Contains(t, output, "assess")
		assert.Contains(t, output, "tier=high")
		assert.Contains(t, output, "words=300")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Classifier{
			AssessFn: func(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error) {
				return clipper.Verdict{}, clipper.Errorf(clipper.EINTERNAL, "config unavailable")
			},
		}

		classifier := clipslog.NewLoggingClassifier(inner, logger)
		_, err := classifier.Assess(context.Background(), clipper.ClassifyInput{URL: "https://example.com"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "config unavailable")
	})
}
