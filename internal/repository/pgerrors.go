package repository

import (
	"errors"

	"github.com/lib/pq"

	"github.com/nc-news-api/internal/apperr"
)

// PostgreSQL error codes and constraint names the repositories translate
// into domain errors at the boundary, so callers never branch on raw
// driver codes.
const (
	pgInvalidTextRepresentation = "22P02"
	pgForeignKeyViolation       = "23503"

	commentsArticleFK = "comments_article_id_fkey"
	commentsAuthorFK  = "comments_author_fkey"
)

// translatePQ maps a raw lib/pq error to a tagged domain error. A comment
// referencing a missing article is NotFound; a comment from an unknown
// author is Unauthorised. Unrecognized errors pass through unchanged for
// the fallback classifier.
func translatePQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pgInvalidTextRepresentation:
		return apperr.BadRequest("Invalid ID")
	case pgForeignKeyViolation:
		switch pqErr.Constraint {
		case commentsArticleFK:
			return apperr.NotFound("Article does not exist")
		case commentsAuthorFK:
			return apperr.Unauthorised()
		}
	}

	return err
}
