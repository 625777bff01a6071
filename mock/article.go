package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of clipper.ArticleService.
type ArticleService struct {
	CreateArticleFn        func(ctx context.Context, article *clipper.Article) error
	CreateImageFn          func(ctx context.Context, img *clipper.Image) error
	FindArticleByIDFn      func(ctx context.Context, id string) (*clipper.Article, error)
	FindArticlesFn         func(ctx context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error)
	UpdateArticleTagsFn    func(ctx context.Context, id string, tags []string) error
	UpdateArticleQualityFn func(ctx context.Context, id string, verdict clipper.Verdict) error
	DeleteArticleFn        func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *clipper.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) CreateImage(ctx context.Context, img *clipper.Image) error {
	return s.CreateImageFn(ctx, img)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*clipper.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) UpdateArticleTags(ctx context.Context, id string, tags []string) error {
	return s.UpdateArticleTagsFn(ctx, id, tags)
}

func (s *ArticleService) UpdateArticleQuality(ctx context.Context, id string, verdict clipper.Verdict) error {
	return s.UpdateArticleQualityFn(ctx, id, verdict)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
