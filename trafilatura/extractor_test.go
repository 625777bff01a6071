package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts paragraphs from an article page", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("Substantial article prose with enough words to keep. ", 10)
		html := `<!DOCTYPE html>
<html><head><title>Page Title</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Page Title</h1>
<p>` + para + `</p>
<p>` + para + `</p>
</article>
<footer>Copyright</footer>
</body></html>`

		e := trafilatura.NewExtractor()
		result, err := e.Extract(html, "https://example.com/page")
		require.NoError(t, err)

		assert.NotEmpty(t, result.Blocks)
		for _, block := range result.Blocks {
			assert.Equal(t, clipper.BlockParagraph, block.Type)
			assert.NotEmpty(t, block.Text)
		}
		assert.Contains(t, result.MainText, "Substantial article prose")
		assert.Equal(t, clipper.JoinBlocks(result.Blocks), result.MainText)
		assert.Equal(t, result.Metadata.WordCount, clipper.CountWords(result.MainText))
		assert.GreaterOrEqual(t, result.Metadata.ReadingTime, 1)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.Extract("   ", "https://example.com")
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
	})
}
