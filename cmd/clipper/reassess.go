package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
)

// Run executes the reassess command.
func (c *ReassessCmd) Run(deps *Dependencies) error {
	var articles []*clipper.Article
	var err error

	if c.ID != "" {
		var article *clipper.Article
		article, err = deps.Articles.FindArticleByID(deps.Ctx, c.ID)
		if err == nil {
			articles = append(articles, article)
		}
	} else {
		articles, err = deps.Articles.FindArticles(deps.Ctx, clipper.ArticleFilter{})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles to reassess.")
		return nil
	}

	var changed int
	for _, article := range articles {
		verdict, err := deps.Classifier.Assess(deps.Ctx, clipper.ClassifyInput{
			URL:         article.SourceURL,
			Title:       article.Title,
			Content:     article.Content,
			WordCount:   article.Metadata.WordCount,
			ReadingTime: article.Metadata.ReadingTime,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
			return err
		}

		if verdict == article.Quality {
			continue
		}
		if err := deps.Articles.UpdateArticleQuality(deps.Ctx, article.ID, verdict); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
			return err
		}
		changed++
		fmt.Fprintf(deps.Stdout, "  %s: %s -> %s (%s)\n",
			article.ID, article.Quality.Tier, verdict.Tier, verdict.Reason)
	}

	fmt.Fprintf(deps.Stdout, "Reassessed %d articles, %d changed\n", len(articles), changed)
	return nil
}
