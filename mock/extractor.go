package mock

import "github.com/fwojciec/clipper"

var _ clipper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of clipper.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*clipper.Extraction, error)
}

func (e *Extractor) Extract(html, baseURL string) (*clipper.Extraction, error) {
	return e.ExtractFn(html, baseURL)
}
