package duckduckgo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/duckduckgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="result result--ad">
	<h2 class="result__title"><a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fads.example.com">Sponsored</a></h2>
	<a class="result__snippet">Buy now</a>
</div>
<div class="result">
	<h2 class="result__title"><a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Farticle">First Result</a></h2>
	<a class="result__snippet">An example snippet.</a>
</div>
<div class="result">
	<h2 class="result__title"><a href="https://direct.example.com/page">Second Result</a></h2>
	<a class="result__snippet">Another snippet.</a>
</div>
</body></html>`

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("parses results and unwraps redirects", func(t *testing.T) {
		t.Parallel()

		var query string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			query = r.PostForm.Get("q")
			_, _ = w.Write([]byte(resultsPage))
		}))
		defer srv.Close()

		s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
		results, err := s.Search(context.Background(), "go concurrency")
		require.NoError(t, err)

		assert.Equal(t, "go concurrency", query)
		require.Len(t, results, 2, "ad result must be skipped")
		assert.Equal(t, clipper.SearchResult{
			Title:   "First Result",
			URL:     "https://example.com/article",
			Snippet: "An example snippet.",
		}, results[0])
		assert.Equal(t, "https://direct.example.com/page", results[1].URL)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearchService()
		_, err := s.Search(context.Background(), "   ")
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
	})

	t.Run("throttling maps to rate limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
		_, err := s.Search(context.Background(), "query")
		assert.Equal(t, clipper.ERATELIMIT, clipper.ErrorCode(err))
	})

	t.Run("server errors map to unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
		_, err := s.Search(context.Background(), "query")
		assert.Equal(t, clipper.EUNAVAILABLE, clipper.ErrorCode(err))
	})

	t.Run("no results yields empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body><div class='no-results'>nothing</div></body></html>"))
		}))
		defer srv.Close()

		s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
		results, err := s.Search(context.Background(), "query")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("canceled context is reported as canceled", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
		_, err := s.Search(ctx, "query")
		assert.Equal(t, clipper.ECANCELED, clipper.ErrorCode(err))
	})
}

func TestSearchService_EncodesQuery(t *testing.T) {
	t.Parallel()

	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(body)
		raw = string(body)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	s := duckduckgo.NewSearchService(duckduckgo.WithBaseURL(srv.URL))
	_, err := s.Search(context.Background(), "a&b =c")
	require.NoError(t, err)

	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	assert.Equal(t, "a&b =c", values.Get("q"))
}
