package clipper

import (
	"context"
	"time"
)

// Article represents a persisted article record: the extraction result
// plus its quality verdict, summary, tags, and provenance.
type Article struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"` // original search-result snippet
	Summary     string    `json:"summary"` // summarizer output, or Snippet when summarization degraded
	Content     string    `json:"content"` // main text, blocks joined by blank lines
	Blocks      []Block   `json:"blocks"`
	Metadata    Metadata  `json:"metadata"`
	Images      []Image   `json:"images"`
	Quality     Verdict   `json:"quality"`
	Tags        []string  `json:"tags"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if a.Quality.Tier != "" && a.Quality.Reason == "" {
		return Errorf(EINVALID, "article quality verdict requires a reason")
	}
	return nil
}

// Image represents an image owned by an article. Once downloaded, the
// byte payload belongs to the persisted record; failed downloads are
// simply absent.
type Image struct {
	ID        string `json:"id"`
	ArticleID string `json:"articleId"`
	SourceURL string `json:"sourceUrl"`
	LocalPath string `json:"localPath"`
	AltText   string `json:"altText"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Data      []byte `json:"-"`
}

// Validate returns an error if the image contains invalid fields.
func (i *Image) Validate() error {
	if i.ArticleID == "" {
		return Errorf(EINVALID, "image article ID required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "image source URL required")
	}
	return nil
}

// ArticleService represents a service for managing persisted articles.
type ArticleService interface {
	// CreateArticle creates a new article together with its images in a
	// single atomic operation. Returns EINVALID if validation fails.
	CreateArticle(ctx context.Context, article *Article) error

	// CreateImage attaches an additional image to an existing article.
	CreateImage(ctx context.Context, img *Image) error

	// FindArticleByID retrieves an article by ID, including its images
	// and tags. Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// UpdateArticleTags replaces the tag set of an article.
	// Returns ENOTFOUND if the article does not exist.
	UpdateArticleTags(ctx context.Context, id string, tags []string) error

	// UpdateArticleQuality overwrites the quality verdict of an article,
	// typically after re-assessment against edited pattern lists.
	// Returns ENOTFOUND if the article does not exist.
	UpdateArticleQuality(ctx context.Context, id string, verdict Verdict) error

	// DeleteArticle permanently removes an article, cascading to its
	// owned images and tag associations.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Tier      *Tier   `json:"tier"`
	Tag       *string `json:"tag"`

	// VisibleOnly restricts results to articles whose verdict is
	// High or Medium.
	VisibleOnly bool `json:"visibleOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
