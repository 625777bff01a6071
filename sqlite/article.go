package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/clipper"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ clipper.ArticleService = (*ArticleService)(nil)

// ArticleService implements clipper.ArticleService using SQLite.
// Image byte payloads are written to the blob column but never hydrated
// on reads; callers that need the bytes go through LocalPath.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateArticle creates a new article together with its images and tags
// in a single transaction.
func (s *ArticleService) CreateArticle(ctx context.Context, article *clipper.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.FetchedAt = time.Now().UTC()
	article.ContentHash = hashContent(article.Content)

	blocks, err := marshalJSON(article.Blocks)
	if err != nil {
		return err
	}
	keywords, err := marshalJSON(article.Metadata.Keywords)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (
			id, source_url, title, snippet, summary, content, blocks,
			author, published_at, description, keywords, language,
			word_count, reading_time, quality_tier, quality_reason,
			content_hash, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.SourceURL, article.Title, article.Snippet, article.Summary,
		article.Content, blocks, article.Metadata.Author, formatTime(article.Metadata.PublishedAt),
		article.Metadata.Description, keywords, article.Metadata.Language,
		article.Metadata.WordCount, article.Metadata.ReadingTime,
		string(article.Quality.Tier), article.Quality.Reason,
		article.ContentHash, article.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i := range article.Images {
		img := &article.Images[i]
		img.ID = uuid.New().String()
		img.ArticleID = article.ID
		if err := img.Validate(); err != nil {
			return err
		}
		if err := insertImage(ctx, tx, img); err != nil {
			return err
		}
	}

	if err := replaceTags(ctx, tx, article.ID, article.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// CreateImage attaches an additional image to an existing article.
func (s *ArticleService) CreateImage(ctx context.Context, img *clipper.Image) error {
	if img.ArticleID == "" {
		return clipper.Errorf(clipper.EINVALID, "image article ID required")
	}
	if err := s.ensureArticleExists(ctx, img.ArticleID); err != nil {
		return err
	}

	img.ID = uuid.New().String()
	if err := img.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertImage(ctx, tx, img); err != nil {
		return err
	}
	return tx.Commit()
}

// FindArticleByID retrieves an article by ID, including its images and
// tags.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*clipper.Article, error) {
	articles, err := s.FindArticles(ctx, clipper.ArticleFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, clipper.Errorf(clipper.ENOTFOUND, "article not found")
	}
	return articles[0], nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter clipper.ArticleFilter) ([]*clipper.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, source_url, title, snippet, summary, content, blocks,
			author, published_at, description, keywords, language,
			word_count, reading_time, quality_tier, quality_reason,
			content_hash, fetched_at
		FROM articles WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Tier != nil {
		query.WriteString(" AND quality_tier = ?")
		args = append(args, string(*filter.Tier))
	}
	if filter.VisibleOnly {
		query.WriteString(" AND quality_tier IN (?, ?)")
		args = append(args, string(clipper.TierHigh), string(clipper.TierMedium))
	}
	if filter.Tag != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM article_tags WHERE article_id = articles.id AND tag = ?)")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*clipper.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, article := range articles {
		if article.Tags, err = s.loadTags(ctx, article.ID); err != nil {
			return nil, err
		}
		if article.Images, err = s.loadImages(ctx, article.ID); err != nil {
			return nil, err
		}
	}

	return articles, nil
}

// UpdateArticleTags replaces the tag set of an article.
func (s *ArticleService) UpdateArticleTags(ctx context.Context, id string, tags []string) error {
	if err := s.ensureArticleExists(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceTags(ctx, tx, id, tags); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateArticleQuality overwrites the quality verdict of an article.
func (s *ArticleService) UpdateArticleQuality(ctx context.Context, id string, verdict clipper.Verdict) error {
	if verdict.Tier != "" && verdict.Reason == "" {
		return clipper.Errorf(clipper.EINVALID, "quality verdict requires a reason")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE articles SET quality_tier = ?, quality_reason = ? WHERE id = ?
	`, string(verdict.Tier), verdict.Reason, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return clipper.Errorf(clipper.ENOTFOUND, "article not found")
	}
	return nil
}

// DeleteArticle permanently removes an article. Images and tag rows
// cascade.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return clipper.Errorf(clipper.ENOTFOUND, "article not found")
	}
	return nil
}

func (s *ArticleService) ensureArticleExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM articles WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return clipper.Errorf(clipper.ENOTFOUND, "article not found")
	}
	return err
}

func (s *ArticleService) loadTags(ctx context.Context, articleID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tag FROM article_tags WHERE article_id = ? ORDER BY tag", articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *ArticleService) loadImages(ctx context.Context, articleID string) ([]clipper.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, article_id, source_url, local_path, alt_text, width, height
		FROM images WHERE article_id = ? ORDER BY id
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []clipper.Image
	for rows.Next() {
		var img clipper.Image
		if err := rows.Scan(&img.ID, &img.ArticleID, &img.SourceURL, &img.LocalPath,
			&img.AltText, &img.Width, &img.Height); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func insertImage(ctx context.Context, tx *sql.Tx, img *clipper.Image) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO images (id, article_id, source_url, local_path, alt_text, width, height, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, img.ID, img.ArticleID, img.SourceURL, img.LocalPath, img.AltText, img.Width, img.Height, img.Data)
	return err
}

func replaceTags(ctx context.Context, tx *sql.Tx, articleID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = ?", articleID); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO article_tags (article_id, tag) VALUES (?, ?)", articleID, tag); err != nil {
			return err
		}
	}
	return nil
}

// scanArticle reads one articles row. rows must be positioned on a row.
func scanArticle(rows *sql.Rows) (*clipper.Article, error) {
	var a clipper.Article
	var blocks, keywords, publishedAt, fetchedAt, tier string

	if err := rows.Scan(&a.ID, &a.SourceURL, &a.Title, &a.Snippet, &a.Summary, &a.Content,
		&blocks, &a.Metadata.Author, &publishedAt, &a.Metadata.Description, &keywords,
		&a.Metadata.Language, &a.Metadata.WordCount, &a.Metadata.ReadingTime,
		&tier, &a.Quality.Reason, &a.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	a.Quality.Tier = clipper.Tier(tier)

	if err := unmarshalJSON(blocks, &a.Blocks, "blocks"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(keywords, &a.Metadata.Keywords, "keywords"); err != nil {
		return nil, err
	}

	var err error
	if a.Metadata.PublishedAt, err = parseOptionalTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if a.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &a, nil
}
