package clipper

import (
	"strings"
	"time"
)

// BlockType identifies the kind of content block.
type BlockType string

// Block types emitted by the segmenter.
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
)

// Block is a single typed unit of extracted article content.
// Blocks are created once during segmentation and immutable thereafter;
// Text is always non-empty and trimmed.
type Block struct {
	Type BlockType `json:"type"`
	Text string    `json:"text"`
}

// Metadata holds article metadata pulled from meta tags, <time>
// elements, and JSON-LD. WordCount and ReadingTime are derived from the
// assembled main text, never set independently.
type Metadata struct {
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Language    string    `json:"language,omitempty"`
	WordCount   int       `json:"wordCount"`
	ReadingTime int       `json:"readingTime"` // minutes, always max(1, WordCount/200)
}

// ImageRef is a reference to an image discovered during extraction,
// before any download has happened.
type ImageRef struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Extraction is the result of running the content extractor over a
// single HTML document. MainText is a cache: it is always derivable by
// joining Blocks with blank-line separators.
type Extraction struct {
	Title    string
	Blocks   []Block
	MainText string
	Images   []ImageRef
	Metadata Metadata
}

// Extractor extracts the main article content from HTML, removing
// boilerplate. Implementations must tolerate arbitrary malformed HTML
// and be deterministic: identical input yields an identical Extraction.
type Extractor interface {
	// Extract processes raw HTML and returns the segmented article
	// content. baseURL is used to resolve relative image URLs.
	Extract(html, baseURL string) (*Extraction, error)
}

// JoinBlocks assembles the main text from a block sequence using
// blank-line separators.
func JoinBlocks(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, "\n\n")
}

// CountWords returns the whitespace-token count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime derives reading time in minutes from a word count,
// assuming 200 words per minute. Always at least one minute.
func ReadingTime(wordCount int) int {
	if minutes := wordCount / 200; minutes > 1 {
		return minutes
	}
	return 1
}
