// Package pipeline orchestrates the search-fetch-extract-classify flow.
// It coordinates search, fetching, encoding resolution, content
// extraction, quality classification, summarization, and storage.
package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/charset"
	"github.com/fwojciec/clipper/goquery"
	"golang.org/x/sync/errgroup"
)

// Render-fallback thresholds. A plain fetch whose visible text is this
// thin, or whose link density is this high, is assumed to be a
// JavaScript shell and is re-fetched through the renderer when one is
// configured.
const (
	renderMinWords       = 200
	renderMaxLinkDensity = 1.5
)

// defaultMaxImages caps best-effort image downloads per article when
// MaxImages is unset.
const defaultMaxImages = 4

// Pipeline orchestrates processing of search results into persisted
// articles.
type Pipeline struct {
	Search      clipper.SearchService
	Fetcher     clipper.Fetcher
	Renderer    clipper.Renderer // optional
	Extractor   clipper.Extractor
	Classifier  clipper.Classifier
	Summarizer  clipper.Summarizer // optional
	Articles    clipper.ArticleService
	RateLimiter clipper.DomainLimiter // optional
	MaxResults  int
	Concurrency int
	MaxImages   int
	RetryDelays []time.Duration
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Tier      clipper.Tier
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single search result.
type pageResult struct {
	position int
	article  *clipper.Article
	err      error
}

// Run searches for the query and processes up to MaxResults results
// concurrently. Articles are persisted sequentially in search-result
// order once all workers finish, so a cancellation mid-batch never
// leaves later articles persisted ahead of earlier ones. The progress
// callback, if provided, receives events as processing proceeds.
func (p *Pipeline) Run(ctx context.Context, query string, progress ProgressFunc) (*Result, error) {
	results, err := p.Search.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	if len(results) == 0 {
		return &Result{}, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(results))

	var completed atomic.Int64
	total := len(results)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, sr := range results {
			i, sr := i, sr
			g.Go(func() error {
				resultCh <- p.processResult(gctx, i, sr)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	ordered := make([]pageResult, len(results))
	for r := range resultCh {
		completed.Add(1)
		ordered[r.position] = r

		if progress == nil {
			continue
		}
		if r.err != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       results[r.position].URL,
				Error:     r.err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       results[r.position].URL,
				Tier:      r.article.Quality.Tier,
			})
		}
	}

	// Persist in search-result order so positions stay stable and a
	// cancellation is a clean prefix.
	var out Result
	for _, r := range ordered {
		if err := ctx.Err(); err != nil {
			return &out, clipper.Errorf(clipper.ECANCELED, "run canceled after %d saved", out.Saved)
		}
		if r.err != nil {
			out.Failed++
			continue
		}

		exists, err := p.articleExists(ctx, r.article.SourceURL)
		if err != nil {
			return &out, err
		}
		if exists {
			out.Skipped++
			continue
		}

		if err := p.Articles.CreateArticle(ctx, r.article); err != nil {
			out.Failed++
			continue
		}
		out.Saved++
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &out, nil
}

// processResult fetches, extracts, classifies, and summarizes a single
// search result. The returned article is not yet persisted.
func (p *Pipeline) processResult(ctx context.Context, position int, sr clipper.SearchResult) pageResult {
	result := pageResult{position: position}

	if p.RateLimiter != nil {
		if domain := domainOf(sr.URL); domain != "" {
			if err := p.RateLimiter.Wait(ctx, domain); err != nil {
				result.err = err
				return result
			}
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, sr.URL, p.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	html, err := charset.Resolve(fetched.Body, fetched.ContentType)
	if err != nil {
		result.err = err
		return result
	}

	html = p.maybeRender(ctx, sr.URL, html)

	extraction, err := p.Extractor.Extract(html, sr.URL)
	if err != nil {
		result.err = err
		return result
	}

	title := extraction.Title
	if title == "" {
		title = sr.Title
	}

	verdict, err := p.Classifier.Assess(ctx, clipper.ClassifyInput{
		URL:         sr.URL,
		Title:       title,
		Content:     extraction.MainText,
		WordCount:   extraction.Metadata.WordCount,
		ReadingTime: extraction.Metadata.ReadingTime,
	})
	if err != nil {
		result.err = err
		return result
	}

	// A failing summarizer degrades to the snippet, never fails the page.
	summary := sr.Snippet
	if p.Summarizer != nil {
		if s, err := p.Summarizer.Summarize(ctx, title, sr.URL, sr.Snippet); err == nil {
			summary = s
		}
	}

	result.article = &clipper.Article{
		SourceURL: sr.URL,
		Title:     title,
		Snippet:   sr.Snippet,
		Summary:   summary,
		Content:   extraction.MainText,
		Blocks:    extraction.Blocks,
		Metadata:  extraction.Metadata,
		Images:    p.downloadImages(ctx, extraction.Images),
		Quality:   verdict,
	}
	return result
}

// maybeRender re-fetches through the renderer when the plain HTML looks
// like a JavaScript shell. Rendering is best effort: any failure keeps
// the original HTML.
func (p *Pipeline) maybeRender(ctx context.Context, url, html string) string {
	if p.Renderer == nil {
		return html
	}

	stats, err := goquery.Stats(html)
	if err != nil {
		return html
	}
	if stats.Words >= renderMinWords && stats.LinkDensity() <= renderMaxLinkDensity {
		return html
	}

	rendered, err := p.Renderer.Render(ctx, url)
	if err != nil || rendered == "" {
		return html
	}
	return rendered
}

// downloadImages fetches image bytes best effort. Failed downloads are
// dropped; image errors never fail the page.
func (p *Pipeline) downloadImages(ctx context.Context, refs []clipper.ImageRef) []clipper.Image {
	maxImages := p.MaxImages
	if maxImages <= 0 {
		maxImages = defaultMaxImages
	}

	var images []clipper.Image
	for _, ref := range refs {
		if len(images) >= maxImages {
			break
		}
		fetched, err := p.Fetcher.Fetch(ctx, ref.SourceURL)
		if err != nil {
			continue
		}
		images = append(images, clipper.Image{
			SourceURL: ref.SourceURL,
			AltText:   ref.AltText,
			Width:     ref.Width,
			Height:    ref.Height,
			Data:      fetched.Body,
		})
	}
	return images
}

func (p *Pipeline) articleExists(ctx context.Context, sourceURL string) (bool, error) {
	existing, err := p.Articles.FindArticles(ctx, clipper.ArticleFilter{SourceURL: &sourceURL, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

