package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prose returns n space-separated words of filler text.
func prose(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("article with heading and prose", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><article><h1>Title</h1><p>" + prose(300) + "</p></article></body></html>"

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "https://example.com/a")

		require.NoError(t, err)
		require.Len(t, result.Blocks, 2)
		assert.Equal(t, clipper.BlockHeading, result.Blocks[0].Type)
		assert.Equal(t, "Title", result.Blocks[0].Text)
		assert.Equal(t, clipper.BlockParagraph, result.Blocks[1].Type)
		assert.Equal(t, 301, result.Metadata.WordCount) // heading word + 300 prose words
		assert.Equal(t, 1, result.Metadata.ReadingTime)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.Extract("   ", "https://example.com")
		assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(err))
	})

	t.Run("main text is blocks joined by blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
			<h2>Head</h2>
			<p>First.</p>
			<p>Second.</p>
			<ul><li>one</li><li>two</li></ul>
		</article></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "")

		require.NoError(t, err)
		assert.Equal(t, clipper.JoinBlocks(result.Blocks), result.MainText)
		require.Len(t, result.Blocks, 4)
		assert.Equal(t, clipper.BlockList, result.Blocks[3].Type)
		assert.Equal(t, "one\ntwo", result.Blocks[3].Text)
	})

	t.Run("strips boilerplate containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav>Home About Contact</nav>
			<div class="cookie-consent">We use cookies</div>
			<article><p>` + prose(60) + `</p></article>
			<footer>Copyright</footer>
		</body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "")

		require.NoError(t, err)
		assert.NotContains(t, result.MainText, "cookies")
		assert.NotContains(t, result.MainText, "Copyright")
		assert.Contains(t, result.MainText, "word0")
	})

	t.Run("link-dense candidate loses to prose candidate", func(t *testing.T) {
		t.Parallel()

		links := strings.Repeat(`<a href="/x">link text here</a> `, 40)
		html := `<html><body>
			<section>` + links + `</section>
			<article><p>` + prose(120) + `</p></article>
		</body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "")

		require.NoError(t, err)
		assert.Contains(t, result.MainText, "word0")
		assert.NotContains(t, result.MainText, "link text here")
	})

	t.Run("nav-only page falls back to body", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<html><body><nav>")
		for i := 0; i < 50; i++ {
			fmt.Fprintf(&b, `<a href="/p%d">item %d</a>`, i, i)
		}
		b.WriteString("</nav>short tail</body></html>")

		e := goquery.NewExtractor()
		result, err := e.Extract(b.String(), "")

		require.NoError(t, err)
		// nav is stripped; the body fallback paragraph carries the rest
		require.NotEmpty(t, result.Blocks)
		assert.Equal(t, clipper.BlockParagraph, result.Blocks[0].Type)
		assert.True(t, result.Metadata.WordCount < 200)
	})

	t.Run("residual div sweep skips near-duplicates", func(t *testing.T) {
		t.Parallel()

		text := prose(60)
		html := `<html><body><div class="content">
			<p>` + text + `</p>
			<div>` + text + `</div>
			<div>completely different residual text that is long enough to pass the fifty character sweep threshold</div>
		</div></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "")

		require.NoError(t, err)
		var paragraphs []string
		for _, b := range result.Blocks {
			paragraphs = append(paragraphs, b.Text)
		}
		assert.Contains(t, strings.Join(paragraphs, "|"), "residual text")
		// the duplicated div must not produce a second copy
		assert.Equal(t, 1, strings.Count(result.MainText, "word59"))
	})

	t.Run("zero blocks falls back to fragment text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>bare text without any block elements</article></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "")

		require.NoError(t, err)
		require.Len(t, result.Blocks, 1)
		assert.Equal(t, clipper.BlockParagraph, result.Blocks[0].Type)
		assert.Equal(t, "bare text without any block elements", result.Blocks[0].Text)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><h1>T</h1><p>` + prose(80) + `</p><div>` +
			prose(30) + ` trailing residual chunk of text</div></article></body></html>`

		e := goquery.NewExtractor()
		first, err := e.Extract(html, "https://example.com")
		require.NoError(t, err)
		second, err := e.Extract(html, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("collects images with resolved URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
			<p>` + prose(60) + `</p>
			<img src="/img/photo.jpg" alt="A photo" width="640" height="480">
			<img src="data:image/png;base64,xyz">
			<img src="/img/photo.jpg">
		</article></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html, "https://example.com/story/1")

		require.NoError(t, err)
		require.Len(t, result.Images, 1)
		assert.Equal(t, "https://example.com/img/photo.jpg", result.Images[0].SourceURL)
		assert.Equal(t, "A photo", result.Images[0].AltText)
		assert.Equal(t, 640, result.Images[0].Width)
		assert.Equal(t, 480, result.Images[0].Height)
	})
}

func TestStats(t *testing.T) {
	t.Parallel()

	t.Run("counts words and links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>var x = 1;</script>
			<p>one two three</p><a href="/a">four</a></body></html>`

		stats, err := goquery.Stats(html)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Words)
		assert.Equal(t, 1, stats.Links)
	})

	t.Run("link density never decreases with more links", func(t *testing.T) {
		t.Parallel()

		text := prose(100)
		prev := -1.0
		for _, n := range []int{0, 5, 20, 80} {
			html := "<html><body><p>" + text + "</p>" +
				strings.Repeat(`<a href="/x">z</a>`, n) + "</body></html>"
			stats, err := goquery.Stats(html)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, stats.LinkDensity(), prev)
			prev = stats.LinkDensity()
		}
	})
}
