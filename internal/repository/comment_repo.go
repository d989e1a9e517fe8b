package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// SelectByID retrieves a comment by ID
func (r *commentRepo) SelectByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT comment_id, body, article_id, author, votes, created_at
		FROM comments WHERE comment_id = $1
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Comment does not exist")
	}
	if err != nil {
		return nil, translatePQ(err)
	}

	return &comment, nil
}

// ListByArticle retrieves all comments on an article, most recent first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	query := `
		SELECT comment_id, body, article_id, author, votes, created_at
		FROM comments WHERE article_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, translatePQ(err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
			&comment.Votes, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// Insert creates a new comment and returns the created row. Foreign key
// violations are translated at this boundary: a missing article is
// NotFound, an unknown author is Unauthorised.
func (r *commentRepo) Insert(ctx context.Context, articleID int, author, body string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (body, article_id, author) VALUES ($1, $2, $3)
		RETURNING comment_id, body, article_id, author, votes, created_at
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, body, articleID, author).Scan(
		&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if err != nil {
		return nil, translatePQ(err)
	}

	return &comment, nil
}

// IncrementVotes applies an atomic vote delta and returns the refreshed row
func (r *commentRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	query := `
		UPDATE comments SET votes = votes + $1 WHERE comment_id = $2
		RETURNING comment_id, body, article_id, author, votes, created_at
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(
		&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Comment does not exist")
	}
	if err != nil {
		return nil, translatePQ(err)
	}

	return &comment, nil
}

// Delete removes a comment by ID, signalling NotFound if nothing matched
func (r *commentRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return translatePQ(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Comment does not exist")
	}

	return nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
