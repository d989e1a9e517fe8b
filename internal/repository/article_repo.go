package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// SelectByID retrieves an article by ID with its live comment count
func (r *articleRepo) SelectByID(ctx context.Context, id int) (*models.Article, error) {
	query := `
		SELECT article_id, title, topic, author, body, created_at, votes, article_img_url,
		       (SELECT COUNT(*)::INT FROM comments WHERE article_id = $1) AS comment_count
		FROM articles WHERE article_id = $1
	`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &article.ImageURL, &article.CommentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Article does not exist")
	}
	if err != nil {
		return nil, translatePQ(err)
	}

	return &article, nil
}

// List retrieves articles with sorting, topic filtering and pagination.
// The body column is deliberately not selected for listings.
func (r *articleRepo) List(ctx context.Context, params ArticleListParams) ([]models.Article, error) {
	query, args := params.build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translatePQ(err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0)
	for rows.Next() {
		var article models.Article
		err := rows.Scan(
			&article.ID, &article.Title, &article.Topic, &article.Author,
			&article.CreatedAt, &article.Votes, &article.ImageURL, &article.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// IncrementVotes applies an atomic vote delta relative to the stored value
// and returns the refreshed row with its recomputed comment count. The
// delta may be negative; no floor is enforced.
func (r *articleRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	query := `
		UPDATE articles SET votes = votes + $1 WHERE article_id = $2
		RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url,
		          (SELECT COUNT(*)::INT FROM comments WHERE article_id = $2) AS comment_count
	`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(
		&article.ID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &article.ImageURL, &article.CommentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Article does not exist")
	}
	if err != nil {
		return nil, translatePQ(err)
	}

	return &article, nil
}

// Exists confirms an article with the given ID is present. Only presence
// is reported; callers needing the row issue a separate fetch.
func (r *articleRepo) Exists(ctx context.Context, id int) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	if err != nil {
		return translatePQ(err)
	}
	if !exists {
		return apperr.NotFound("Article does not exist")
	}
	return nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
