package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
)

// Raw driver codes recognized by the fallback classifiers. The repository
// layer normally translates these before they propagate; the chain keeps
// them as a safety net for errors that slip through untranslated.
const (
	pqInvalidTextRepresentation = pq.ErrorCode("22P02")
	pqForeignKeyViolation       = pq.ErrorCode("23503")
)

// classification is the HTTP response an error maps to
type classification struct {
	status int
	body   gin.H
}

// classifier inspects an error's shape and reports whether it applies.
// Classifiers run in priority order; exactly one fires per error.
type classifier func(error) (classification, bool)

var classifierChain = []classifier{
	classifyTagged,
	classifyInvalidSyntax,
	classifyArticleFK,
	classifyAuthorFK,
}

// errorMiddleware is the centralized error dispatcher. Handlers record
// failures with c.Error and write no response themselves; after the
// handler runs, the last recorded error is matched against the chain, and
// anything unrecognized is answered with a generic 500 and logged.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		for _, classify := range classifierChain {
			if result, ok := classify(err); ok {
				c.JSON(result.status, result.body)
				return
			}
		}

		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("Unclassified error")
		c.JSON(500, gin.H{"error": apperr.KindInternal})
	}
}

// classifyTagged handles errors that already carry an explicit status,
// kind and message
func classifyTagged(err error) (classification, bool) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return classification{}, false
	}

	body := gin.H{"error": appErr.Kind}
	if appErr.Msg != "" {
		body["msg"] = appErr.Msg
	}
	return classification{status: appErr.Status, body: body}, true
}

// classifyInvalidSyntax handles driver-level invalid input syntax,
// e.g. a non-numeric value bound to an integer column
func classifyInvalidSyntax(err error) (classification, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqInvalidTextRepresentation {
		return classification{}, false
	}
	return classification{
		status: 400,
		body:   gin.H{"error": apperr.KindBadRequest, "msg": "Invalid ID"},
	}, true
}

// classifyArticleFK handles a comment referencing a missing article
func classifyArticleFK(err error) (classification, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqForeignKeyViolation || pqErr.Constraint != "comments_article_id_fkey" {
		return classification{}, false
	}
	return classification{
		status: 404,
		body:   gin.H{"error": apperr.KindNotFound, "msg": "Article does not exist"},
	}, true
}

// classifyAuthorFK handles a comment authored by an unknown user
func classifyAuthorFK(err error) (classification, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqForeignKeyViolation || pqErr.Constraint != "comments_author_fkey" {
		return classification{}, false
	}
	return classification{
		status: 401,
		body:   gin.H{"error": apperr.KindUnauthorised},
	}, true
}
