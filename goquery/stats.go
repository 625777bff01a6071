package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// PageStats summarizes a raw document for the render-fallback
// heuristic: visible word count, link count, and text length.
type PageStats struct {
	Words   int
	Links   int
	TextLen int
}

// LinkDensity returns the document's link density using the same
// normalization as candidate scoring.
func (s PageStats) LinkDensity() float64 {
	return linkDensity(s.Links, s.TextLen)
}

// Stats computes PageStats over a whole raw document. Script and style
// content is excluded from the visible text.
func Stats(rawHTML string) (PageStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return PageStats{}, err
	}
	doc.Find("script, style, noscript").Remove()

	text := strings.TrimSpace(doc.Text())
	return PageStats{
		Words:   len(strings.Fields(text)),
		Links:   doc.Find("a").Length(),
		TextLen: utf8.RuneCountInString(text),
	}, nil
}
