// Package rod provides a clipper.Renderer backed by headless Chrome
// browser automation, used as the JavaScript-render fallback when a
// plain fetch yields too little content.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSettleWindow is how long the renderer waits after navigation
// completes before reading back the DOM, giving client-side rendering
// a chance to finish.
const DefaultSettleWindow = 3 * time.Second

// Ensure Renderer implements clipper.Renderer at compile time.
var _ clipper.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using Chrome browser
// automation. Renderer is safe for concurrent use by multiple
// goroutines.
type Renderer struct {
	browser *rod.Browser
	settle  time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettleWindow overrides the post-navigation settle window.
func WithSettleWindow(d time.Duration) Option {
	return func(r *Renderer) {
		r.settle = d
	}
}

// NewRenderer creates a new Renderer that launches a headless Chrome
// browser. Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{settle: DefaultSettleWindow}
	for _, opt := range opts {
		opt(r)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	return r, nil
}

// Render navigates to the URL, waits for the page to load plus the
// settle window, and returns the serialized DOM.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(r.settle):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.browser.Close()
}
