package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/clipper"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title:    %s\n", article.Title)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", article.SourceURL)
	fmt.Fprintf(deps.Stdout, "Quality:  %s (%s)\n", article.Quality.Tier, article.Quality.Reason)
	if article.Metadata.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author:   %s\n", article.Metadata.Author)
	}
	if !article.Metadata.PublishedAt.IsZero() {
		fmt.Fprintf(deps.Stdout, "Published: %s\n", article.Metadata.PublishedAt.Format(time.DateOnly))
	}
	fmt.Fprintf(deps.Stdout, "Words:    %d (~%d min)\n", article.Metadata.WordCount, article.Metadata.ReadingTime)
	if len(article.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags:     %s\n", strings.Join(article.Tags, ", "))
	}
	if article.Summary != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", article.Summary)
	}

	if c.Full {
		fmt.Fprintf(deps.Stdout, "\n%s\n", article.Content)
	}

	return nil
}
