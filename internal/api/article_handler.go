package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/service"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// GetArticles handles GET /api/articles.
// Supports sort_by, order, topic, limit and offset query parameters; the
// sort key and direction are validated downstream against an allow-list.
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	params := repository.ArticleListParams{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Topic:  c.Query("topic"),
		Limit:  intQuery(c, "limit", h.cfg.API.DefaultPageSize),
		Offset: intQuery(c, "offset", 0),
	}

	articles, err := h.services.Article.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticleByID handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticleByID(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// PatchArticle handles PATCH /api/articles/:article_id with a body of
// {"inc_votes": n}
func (h *ArticleHandler) PatchArticle(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperr.BadRequest("Invalid or missing keys"))
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), c.Param("article_id"), payload)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// intQuery parses an integer query parameter, falling back to the default
// when absent or malformed
func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
