// Package trafilatura provides an alternate clipper.Extractor backed by
// go-trafilatura, selectable when the built-in heuristics underperform
// on a site.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/clipper"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements clipper.Extractor at compile time.
var _ clipper.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article content. The
// extracted plain text is segmented into paragraph blocks on blank
// lines; trafilatura's own metadata fills the fields it knows about.
func (e *Extractor) Extract(rawHTML, baseURL string) (*clipper.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, clipper.Errorf(clipper.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	blocks := segmentText(result.ContentText)
	mainText := clipper.JoinBlocks(blocks)
	wordCount := clipper.CountWords(mainText)

	meta := clipper.Metadata{
		Author:      result.Metadata.Author,
		PublishedAt: result.Metadata.Date,
		Description: result.Metadata.Description,
		Language:    result.Metadata.Language,
		WordCount:   wordCount,
		ReadingTime: clipper.ReadingTime(wordCount),
	}
	if result.Metadata.Tags != nil {
		meta.Keywords = result.Metadata.Tags
	}

	return &clipper.Extraction{
		Title:    result.Metadata.Title,
		Blocks:   blocks,
		MainText: mainText,
		Metadata: meta,
	}, nil
}

// segmentText splits extracted plain text into paragraph blocks on
// blank lines.
func segmentText(text string) []clipper.Block {
	var blocks []clipper.Block
	for _, part := range strings.Split(text, "\n\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, clipper.Block{Type: clipper.BlockParagraph, Text: part})
	}
	return blocks
}
