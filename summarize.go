package clipper

import "context"

// Summarizer produces a short summary for a search result. A failing
// summarizer always degrades to the original snippet at the call site;
// its errors never propagate as a batch failure.
type Summarizer interface {
	Summarize(ctx context.Context, title, url, snippet string) (string, error)
}
