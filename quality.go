package clipper

import (
	"context"
	"strings"
)

// Tier is the quality tier assigned to an article by the classifier.
type Tier string

// Quality tiers, ordered best to worst.
const (
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierExcluded Tier = "excluded"
)

// Verdict is the classifier's output: a tier plus a human-readable
// reason naming the rule that fired. Every verdict carries a non-empty
// reason.
type Verdict struct {
	Tier   Tier   `json:"tier"`
	Reason string `json:"reason"`
}

// IsVisible reports whether an article with this verdict should be
// shown to the user. It is exactly Tier ∈ {High, Medium} and never
// independently settable.
func (v Verdict) IsVisible() bool {
	return v.Tier == TierHigh || v.Tier == TierMedium
}

// QualityConfig holds the five user-editable pattern lists consulted by
// the classifier. Lists are matched case-insensitively as substrings
// (URL patterns against the URL, the rest against title+content).
type QualityConfig struct {
	QualityIndicators         []string `json:"qualityIndicators"`
	LowQualityIndicators      []string `json:"lowQualityIndicators"`
	MeaningfulContentPatterns []string `json:"meaningfulContentPatterns"`
	EmptyContentPatterns      []string `json:"emptyContentPatterns"`
	ExcludedURLPatterns       []string `json:"excludedUrlPatterns"`
}

// Normalize trims, drops empty entries, and deduplicates every list in
// place, preserving first-occurrence order. Applied on every write so
// readers never observe denormalized lists.
func (c *QualityConfig) Normalize() {
	c.QualityIndicators = normalizeList(c.QualityIndicators)
	c.LowQualityIndicators = normalizeList(c.LowQualityIndicators)
	c.MeaningfulContentPatterns = normalizeList(c.MeaningfulContentPatterns)
	c.EmptyContentPatterns = normalizeList(c.EmptyContentPatterns)
	c.ExcludedURLPatterns = normalizeList(c.ExcludedURLPatterns)
}

func normalizeList(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// QualityConfigService manages the persisted pattern lists. Reads must
// always observe a fully-written, consistent set of lists; Replace is
// atomic, never a partial in-place mutation.
type QualityConfigService interface {
	// Config returns the current configuration, seeding the multilingual
	// defaults on first access if unset.
	Config(ctx context.Context) (*QualityConfig, error)

	// ReplaceConfig atomically replaces the whole configuration.
	// The config is normalized before being persisted.
	ReplaceConfig(ctx context.Context, cfg *QualityConfig) error
}

// ClassifyInput is the input to a quality assessment.
type ClassifyInput struct {
	URL         string
	Title       string
	Content     string
	WordCount   int
	ReadingTime int
}

// Classifier assigns a quality verdict to extracted content.
// Assessments are deterministic pure functions of the input plus the
// currently configured pattern lists; implementations re-read the live
// configuration on every call.
type Classifier interface {
	Assess(ctx context.Context, input ClassifyInput) (Verdict, error)
}
