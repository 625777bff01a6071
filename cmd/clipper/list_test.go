package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/clipper"
	main "github.com/fwojciec/clipper/cmd/clipper"
	"github.com/fwojciec/clipper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists articles with ID, tier, title and tags", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error) {
				assert.True(t, filter.VisibleOnly)
				return []*clipper.Article{
					{
						ID:        "art-123",
						Title:     "Deep Dive",
						SourceURL: "https://example.com/deep-dive",
						Quality:   clipper.Verdict{Tier: clipper.TierHigh, Reason: "r"},
						Tags:      []string{"go"},
					},
					{
						ID:        "art-456",
						Title:     "Quick Take",
						SourceURL: "https://example.com/quick",
						Quality:   clipper.Verdict{Tier: clipper.TierMedium, Reason: "r"},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Articles: articles,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "art-123")
		assert.Contains(t, output, "art-456")
		assert.Contains(t, output, "Deep Dive")
		assert.Contains(t, output, "[high]")
		assert.Contains(t, output, "#go")
		assert.Contains(t, output, "2 articles (high: 1, medium: 1)")
	})

	t.Run("all flag includes hidden tiers", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error) {
				assert.False(t, filter.VisibleOnly)
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		cmd := &main.ListCmd{All: true}
		require.NoError(t, cmd.Run(deps))
	})

	t.Run("tier flag filters by tier", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error) {
				require.NotNil(t, filter.Tier)
				assert.Equal(t, clipper.TierLow, *filter.Tier)
				assert.False(t, filter.VisibleOnly)
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		cmd := &main.ListCmd{Tier: "low"}
		require.NoError(t, cmd.Run(deps))
	})

	t.Run("shows helpful message when no articles exist", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, _ clipper.ArticleFilter) ([]*clipper.Article, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No articles")
	})

	t.Run("returns error when FindArticles fails", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, _ clipper.ArticleFilter) ([]*clipper.Article, error) {
				return nil, clipper.Errorf(clipper.EINTERNAL, "database closed")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Articles: articles,
		}

		cmd := &main.ListCmd{}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
