package clipper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := clipper.Errorf(clipper.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, clipper.ENOTFOUND, clipper.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", clipper.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clipper.ErrorCode(nil))
}

func TestErrorCode_ContextCanceled(t *testing.T) {
	t.Parallel()

	// Cancellation must stay distinct even when wrapped.
	err := errors.Join(errors.New("fetch aborted"), context.Canceled)
	assert.Equal(t, clipper.ECANCELED, clipper.ErrorCode(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clipper.ErrorMessage(nil))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, clipper.IsRetryable(clipper.Errorf(clipper.ERATELIMIT, "HTTP 429")))
	assert.True(t, clipper.IsRetryable(clipper.Errorf(clipper.EUNAVAILABLE, "connection reset")))
	assert.False(t, clipper.IsRetryable(clipper.Errorf(clipper.EINVALID, "HTTP 404")))
	assert.False(t, clipper.IsRetryable(clipper.Errorf(clipper.ECANCELED, "canceled")))
	assert.False(t, clipper.IsRetryable(nil))
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wordCount int
		want      int
	}{
		{"zero words floors at one minute", 0, 1},
		{"short content floors at one minute", 150, 1},
		{"exactly one minute", 200, 1},
		{"multiple minutes truncate", 450, 2},
		{"long content", 2000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clipper.ReadingTime(tt.wordCount))
		})
	}
}

func TestJoinBlocks_RoundTrip(t *testing.T) {
	t.Parallel()

	blocks := []clipper.Block{
		{Type: clipper.BlockHeading, Text: "Title"},
		{Type: clipper.BlockParagraph, Text: "First paragraph."},
		{Type: clipper.BlockList, Text: "one\ntwo"},
	}

	assert.Equal(t, "Title\n\nFirst paragraph.\n\none\ntwo", clipper.JoinBlocks(blocks))
}

func TestVerdict_IsVisible(t *testing.T) {
	t.Parallel()

	assert.True(t, clipper.Verdict{Tier: clipper.TierHigh, Reason: "r"}.IsVisible())
	assert.True(t, clipper.Verdict{Tier: clipper.TierMedium, Reason: "r"}.IsVisible())
	assert.False(t, clipper.Verdict{Tier: clipper.TierLow, Reason: "r"}.IsVisible())
	assert.False(t, clipper.Verdict{Tier: clipper.TierExcluded, Reason: "r"}.IsVisible())
}

func TestQualityConfig_Normalize(t *testing.T) {
	t.Parallel()

	cfg := &clipper.QualityConfig{
		QualityIndicators:   []string{" research ", "", "study", "Research"},
		ExcludedURLPatterns: []string{".pdf", ".pdf", " /sitemap "},
	}

	cfg.Normalize()

	assert.Equal(t, []string{"research", "study"}, cfg.QualityIndicators)
	assert.Equal(t, []string{".pdf", "/sitemap"}, cfg.ExcludedURLPatterns)
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires source URL", func(t *testing.T) {
		t.Parallel()

		a := &clipper.Article{}
		err := a.Validate()
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
	})

	t.Run("requires reason when verdict set", func(t *testing.T) {
		t.Parallel()

		a := &clipper.Article{
			SourceURL: "https://example.com/a",
			Quality:   clipper.Verdict{Tier: clipper.TierLow},
		}
		err := a.Validate()
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
	})

	t.Run("accepts valid article", func(t *testing.T) {
		t.Parallel()

		a := &clipper.Article{
			SourceURL: "https://example.com/a",
			Quality:   clipper.Verdict{Tier: clipper.TierMedium, Reason: "structural markers present"},
		}
		assert.NoError(t, a.Validate())
	})
}
