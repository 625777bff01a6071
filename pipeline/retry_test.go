package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0}

	t.Run("returns first success without retrying", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			calls++
			return &clipper.FetchResult{StatusCode: 200}, nil
		}

		result, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)
		require.NoError(t, err)
		assert.Equal(t, 200, result.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries retryable failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			calls++
			if calls < 3 {
				return nil, clipper.Errorf(clipper.EUNAVAILABLE, "HTTP 503")
			}
			return &clipper.FetchResult{StatusCode: 200}, nil
		}

		result, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)
		require.NoError(t, err)
		assert.Equal(t, 200, result.StatusCode)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			calls++
			return nil, clipper.Errorf(clipper.EINVALID, "HTTP 404")
		}

		_, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("returns the last error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			calls++
			return nil, clipper.Errorf(clipper.ERATELIMIT, "HTTP 429")
		}

		_, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)
		assert.Equal(t, clipper.ERATELIMIT, clipper.ErrorCode(err))
		assert.Equal(t, 3, calls) // 1 initial + 2 retries
	})

	t.Run("logs retry attempts", func(t *testing.T) {
		t.Parallel()

		var logged []string
		logger := func(format string, args ...any) {
			logged = append(logged, format)
		}
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			return nil, clipper.Errorf(clipper.EUNAVAILABLE, "HTTP 502")
		}

		_, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, logger, noDelays)
		require.Error(t, err)
		assert.Len(t, logged, 2)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(_ context.Context, _ string) (*clipper.FetchResult, error) {
			cancel()
			return nil, clipper.Errorf(clipper.EUNAVAILABLE, "HTTP 503")
		}

		_, err := pipeline.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Minute})
		assert.Equal(t, clipper.ECANCELED, clipper.ErrorCode(err))
	})

	t.Run("default delays back off", func(t *testing.T) {
		t.Parallel()

		delays := pipeline.DefaultRetryDelays()
		require.Len(t, delays, 2)
		assert.Less(t, delays[0], delays[1])
	})
}
