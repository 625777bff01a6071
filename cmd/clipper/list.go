package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/clipper"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := clipper.ArticleFilter{VisibleOnly: !c.All}
	if c.Tier != "" {
		tier := clipper.Tier(c.Tier)
		filter.Tier = &tier
		filter.VisibleOnly = false
	}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'clipper search' to save some.")
		return nil
	}

	counts := map[clipper.Tier]int{}
	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = a.SourceURL
		}
		line := fmt.Sprintf("%s  [%s]  %s", a.ID, a.Quality.Tier, title)
		if len(a.Tags) > 0 {
			line += "  #" + strings.Join(a.Tags, " #")
		}
		fmt.Fprintln(deps.Stdout, line)
		counts[a.Quality.Tier]++
	}

	parts := make([]string, 0, len(counts))
	for _, tier := range []clipper.Tier{clipper.TierHigh, clipper.TierMedium, clipper.TierLow, clipper.TierExcluded} {
		if n := counts[tier]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", tier, n))
		}
	}
	fmt.Fprintf(deps.Stdout, "\n%d articles (%s)\n", len(articles), strings.Join(parts, ", "))

	return nil
}
