// Package goquery implements content extraction over a lightweight DOM
// parsed by PuerkitoBio/goquery. It behaves like a simplified
// Readability: boilerplate stripping, candidate-container scoring,
// block segmentation, and metadata extraction with JSON-LD fallbacks.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipper"
)

// Scoring constants. These are tuned heuristics, not derived values:
// text length rewards substance, structural counts reward article-like
// formatting, link density penalizes navigation-heavy containers.
const (
	textWeight        = 0.01
	paragraphWeight   = 4.0
	listItemWeight    = 1.5
	headingWeight     = 1.0
	linkDensityWeight = 10.0

	// linkNormChars normalizes link counts per ~80 characters of text.
	linkNormChars = 80.0

	// sweepMinChars is the minimum text length for the residual div
	// sweep to emit a paragraph block.
	sweepMinChars = 50

	// duplicateSimilarity is the Jaccard word-set similarity above
	// which a swept block is treated as a duplicate and discarded.
	duplicateSimilarity = 0.8
)

// noiseTags are whole subtrees removed outright before scoring.
var noiseTags = "script, style, noscript, header, nav, footer, aside, form"

// noiseKeywords mark div/section subtrees as boilerplate when found in
// a class or id attribute. Removing too much is preferred over leaving
// noise in; the candidate scorer downweights link-dense blocks as a
// second line of defense.
var noiseKeywords = []string{
	"cookie", "consent", "banner", "ads", "advert", "breadcrumb",
	"sidebar", "share", "newsletter", "related", "comments", "promo",
	"paywall", "subscribe",
}

// contentKeywords mark divs as candidate content containers.
var contentKeywords = []string{"content", "article", "post", "story", "text", "body"}

// Ensure Extractor implements clipper.Extractor at compile time.
var _ clipper.Extractor = (*Extractor)(nil)

// Extractor extracts article content from HTML. It is stateless and
// deterministic: identical input yields an identical Extraction.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the segmented article content.
func (e *Extractor) Extract(rawHTML, baseURL string) (*clipper.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, clipper.Errorf(clipper.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, clipper.Errorf(clipper.EINVALID, "failed to parse HTML: %v", err)
	}

	// Metadata is read before stripping: JSON-LD lives in script tags
	// which the stripper removes.
	title, meta := extractMetadata(doc)

	stripBoilerplate(doc)
	winner := bestCandidate(doc)
	blocks := segment(winner)
	mainText := clipper.JoinBlocks(blocks)

	meta.WordCount = clipper.CountWords(mainText)
	meta.ReadingTime = clipper.ReadingTime(meta.WordCount)

	return &clipper.Extraction{
		Title:    title,
		Blocks:   blocks,
		MainText: mainText,
		Images:   collectImages(winner, baseURL),
		Metadata: meta,
	}, nil
}

// stripBoilerplate removes script/style/comment content, structural
// noise tags, and div/section subtrees whose class or id matches a
// noise keyword. Comments are dropped by the parser's text accessors.
func stripBoilerplate(doc *goquery.Document) {
	doc.Find(noiseTags).Remove()
	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		if hasKeywordAttr(s, noiseKeywords) {
			s.Remove()
		}
	})
}

// hasKeywordAttr reports whether the selection's class or id attribute
// contains any of the given keywords.
func hasKeywordAttr(s *goquery.Selection, keywords []string) bool {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	attrs := strings.ToLower(class + " " + id)
	if strings.TrimSpace(attrs) == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(attrs, kw) {
			return true
		}
	}
	return false
}

// bestCandidate collects candidate content containers and returns the
// highest scoring one. Ties resolve to the first-encountered candidate.
// Falls back to <body>, then to the whole document.
func bestCandidate(doc *goquery.Document) *goquery.Selection {
	var candidates []*goquery.Selection

	doc.Find("article, main, section").Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, s)
	})
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if hasKeywordAttr(s, contentKeywords) {
			candidates = append(candidates, s)
		}
	})

	if len(candidates) == 0 {
		if body := doc.Find("body"); body.Length() > 0 {
			return body.First()
		}
		return doc.Selection
	}

	best := candidates[0]
	bestScore := scoreCandidate(best)
	for _, c := range candidates[1:] {
		if s := scoreCandidate(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// scoreCandidate scores a candidate container by text volume,
// structural richness, and link density.
func scoreCandidate(s *goquery.Selection) float64 {
	textLen := utf8.RuneCountInString(strings.TrimSpace(s.Text()))
	paragraphs := s.Find("p").Length()
	listItems := s.Find("li").Length()
	headings := s.Find("h1, h2, h3, h4, h5, h6").Length()
	links := s.Find("a").Length()

	structural := float64(paragraphs)*paragraphWeight +
		float64(listItems)*listItemWeight +
		float64(headings)*headingWeight

	return float64(textLen)*textWeight + structural - linkDensity(links, textLen)*linkDensityWeight
}

// linkDensity is the count of links normalized per linkNormChars
// characters of text. The same formula drives candidate scoring and the
// render-fallback heuristic.
func linkDensity(links, textLen int) float64 {
	norm := float64(textLen) / linkNormChars
	if norm < 1 {
		norm = 1
	}
	return float64(links) / norm
}

// segment walks the winning candidate and emits typed blocks: all
// headings first in document order, then paragraphs, then list items
// consolidated into a single list block, then a residual sweep over
// text-bearing divs. The pass order intentionally does not interleave
// block types by document position.
func segment(s *goquery.Selection) []clipper.Block {
	var blocks []clipper.Block

	s.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		if text := collapseText(h.Text()); text != "" {
			blocks = append(blocks, clipper.Block{Type: clipper.BlockHeading, Text: text})
		}
	})

	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseText(p.Text()); text != "" {
			blocks = append(blocks, clipper.Block{Type: clipper.BlockParagraph, Text: text})
		}
	})

	var items []string
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := collapseText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	if len(items) > 0 {
		blocks = append(blocks, clipper.Block{Type: clipper.BlockList, Text: strings.Join(items, "\n")})
	}

	// Residual sweep: divs without block-level descendants that still
	// carry enough text, skipping near-duplicates of existing blocks.
	s.Find("div").Each(func(_ int, div *goquery.Selection) {
		if div.Find("p, h1, h2, h3, h4, h5, h6, li, div").Length() > 0 {
			return
		}
		text := collapseText(div.Text())
		if utf8.RuneCountInString(text) <= sweepMinChars {
			return
		}
		if isNearDuplicate(text, blocks) {
			return
		}
		blocks = append(blocks, clipper.Block{Type: clipper.BlockParagraph, Text: text})
	})

	if len(blocks) == 0 {
		if text := collapseText(s.Text()); text != "" {
			blocks = append(blocks, clipper.Block{Type: clipper.BlockParagraph, Text: text})
		}
	}

	return blocks
}

// collapseText trims and collapses internal whitespace runs to single
// spaces so block text is stable across formatting differences.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isNearDuplicate reports whether text is a near-duplicate of any
// existing block by word-set Jaccard similarity.
func isNearDuplicate(text string, blocks []clipper.Block) bool {
	set := wordSet(text)
	for _, b := range blocks {
		if jaccard(set, wordSet(b.Text)) > duplicateSimilarity {
			return true
		}
	}
	return false
}

// wordSet returns the lowercased whitespace-token set of text.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

// jaccard computes |a∩b| / |a∪b| for two word sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
