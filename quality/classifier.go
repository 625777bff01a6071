// Package quality classifies extracted article content into quality
// tiers using configurable multilingual keyword and pattern lists plus
// numeric thresholds. Assessment is a deterministic pure function of
// the input and the current configuration.
package quality

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/clipper"
)

// Numeric thresholds. minWordCount gates rule 2; the High rules require
// 1.5x and 2x the minimum respectively.
const (
	minWordCount  = 50
	minContentLen = 200
	maxLinkRatio  = 0.3
	meaningfulMin = minWordCount * 3 / 2 // 75
	qualityMin    = minWordCount * 2     // 100
)

// listMarkerRe matches bullet or numbered list lines in assembled text.
var listMarkerRe = regexp.MustCompile(`(?m)^\s*(?:[-•*]|\d+[.)])\s+`)

// Ensure Classifier implements clipper.Classifier at compile time.
var _ clipper.Classifier = (*Classifier)(nil)

// Classifier assesses content against the live configuration. The
// configuration service is consulted on every call so edits made
// through the settings surface take effect immediately.
type Classifier struct {
	config clipper.QualityConfigService
}

// NewClassifier creates a Classifier reading from the given
// configuration service.
func NewClassifier(config clipper.QualityConfigService) *Classifier {
	return &Classifier{config: config}
}

// Assess returns the quality verdict for the input under the current
// configuration.
func (c *Classifier) Assess(ctx context.Context, input clipper.ClassifyInput) (clipper.Verdict, error) {
	cfg, err := c.config.Config(ctx)
	if err != nil {
		return clipper.Verdict{}, err
	}
	return Evaluate(input, cfg), nil
}

// Evaluate classifies the input against a fixed configuration snapshot.
// Rules are evaluated in order; the first match wins, and every branch
// returns a human-readable reason naming the rule that fired.
func Evaluate(input clipper.ClassifyInput, cfg *clipper.QualityConfig) clipper.Verdict {
	urlLower := strings.ToLower(input.URL)
	textLower := strings.ToLower(input.Title + " " + input.Content)

	// 1. Excluded URL patterns (file extensions, legal/sitemap pages).
	if p := matchAny(urlLower, cfg.ExcludedURLPatterns); p != "" {
		return clipper.Verdict{
			Tier:   clipper.TierExcluded,
			Reason: "URL matches excluded pattern " + quote(p),
		}
	}

	// 2-4. Size gates.
	if input.WordCount < minWordCount {
		return clipper.Verdict{Tier: clipper.TierLow, Reason: "word count below minimum of 50"}
	}
	if input.ReadingTime < 1 {
		return clipper.Verdict{Tier: clipper.TierLow, Reason: "reading time below one minute"}
	}
	if len(input.Content) < minContentLen {
		return clipper.Verdict{Tier: clipper.TierLow, Reason: "content shorter than 200 characters"}
	}

	// 5. Link-token density.
	if linkTokenRatio(input.Content) > maxLinkRatio {
		return clipper.Verdict{Tier: clipper.TierLow, Reason: "content is mostly links"}
	}

	meaningful := matchAny(textLower, cfg.MeaningfulContentPatterns)
	structural := hasStructuralMarkers(input.Content)

	// 6. Empty-content patterns (error pages, paywalled shells).
	if p := matchAny(textLower, cfg.EmptyContentPatterns); p != "" && meaningful == "" {
		return clipper.Verdict{
			Tier:   clipper.TierLow,
			Reason: "matches empty-content pattern " + quote(p),
		}
	}

	qualityHit := matchAny(textLower, cfg.QualityIndicators)

	// 7. Low-quality indicators without redeeming signals.
	if p := matchAny(textLower, cfg.LowQualityIndicators); p != "" && qualityHit == "" && meaningful == "" {
		return clipper.Verdict{
			Tier:   clipper.TierLow,
			Reason: "matches low-quality indicator " + quote(p),
		}
	}

	// 8. Structureless content with no meaningful pattern.
	if !structural && meaningful == "" {
		return clipper.Verdict{Tier: clipper.TierLow, Reason: "no structural markers or meaningful patterns"}
	}

	// 9-10. High tiers require both a pattern hit and substance.
	if meaningful != "" && input.WordCount > meaningfulMin {
		return clipper.Verdict{
			Tier:   clipper.TierHigh,
			Reason: "meaningful pattern " + quote(meaningful) + " with substantial word count",
		}
	}
	if qualityHit != "" && input.WordCount > qualityMin {
		return clipper.Verdict{
			Tier:   clipper.TierHigh,
			Reason: "quality indicator " + quote(qualityHit) + " with substantial word count",
		}
	}

	// 11-12. Everything else is Medium.
	if meaningful != "" || structural {
		return clipper.Verdict{Tier: clipper.TierMedium, Reason: "meaningful pattern or document structure present"}
	}
	return clipper.Verdict{Tier: clipper.TierMedium, Reason: "no disqualifying signals"}
}

// matchAny returns the first pattern contained in text (both already
// lowercased by the caller for text patterns), or "".
func matchAny(text string, patterns []string) string {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(p)) {
			return p
		}
	}
	return ""
}

// linkTokenRatio is the share of whitespace tokens that look like URLs.
func linkTokenRatio(content string) float64 {
	tokens := strings.Fields(content)
	if len(tokens) == 0 {
		return 0
	}
	links := 0
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if strings.HasPrefix(lower, "http://") ||
			strings.HasPrefix(lower, "https://") ||
			strings.HasPrefix(lower, "www.") {
			links++
		}
	}
	return float64(links) / float64(len(tokens))
}

// hasStructuralMarkers reports whether the assembled text shows
// article-like structure: multiple body paragraphs, a heading followed
// by body text, or list markers.
func hasStructuralMarkers(content string) bool {
	if listMarkerRe.MatchString(content) {
		return true
	}

	var blocks []string
	for _, b := range strings.Split(content, "\n\n") {
		if b := strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}

	paragraphs := 0
	for i, b := range blocks {
		if isHeadingBlock(b) {
			if i+1 < len(blocks) {
				return true
			}
			continue
		}
		paragraphs++
	}
	return paragraphs >= 2
}

// isHeadingBlock reports whether a block reads as a heading: a single
// short line with no terminal punctuation.
func isHeadingBlock(block string) bool {
	if block == "" || strings.Contains(block, "\n") || len(block) > 80 {
		return false
	}
	switch block[len(block)-1] {
	case '.', '!', '?', ',', ';', ':':
		return false
	}
	return true
}

// quote quotes a matched pattern for inclusion in a reason string.
func quote(p string) string {
	return "\"" + p + "\""
}
