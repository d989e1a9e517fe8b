package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/service"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// GetArticleComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) GetArticleComments(c *gin.Context) {
	comments, err := h.services.Comment.ListForArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// PostComment handles POST /api/articles/:article_id/comments with a body
// of {"author": ..., "body": ...}
func (h *CommentHandler) PostComment(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperr.BadRequest("Invalid or missing keys"))
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), c.Param("article_id"), payload)
	if err != nil {
		c.Error(err)
		return
	}

	h.log.Info().
		Int("comment_id", comment.ID).
		Int("article_id", comment.ArticleID).
		Str("author", comment.Author).
		Msg("Comment created")

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetCommentByID handles GET /api/comment/:comment_id
func (h *CommentHandler) GetCommentByID(c *gin.Context) {
	comment, err := h.services.Comment.Get(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// PatchComment handles PATCH /api/comment/:comment_id with a body of
// {"inc_votes": n}
func (h *CommentHandler) PatchComment(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperr.BadRequest("Invalid or missing keys"))
		return
	}

	comment, err := h.services.Comment.UpdateVotes(c.Request.Context(), c.Param("comment_id"), payload)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.services.Comment.Delete(c.Request.Context(), c.Param("comment_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
