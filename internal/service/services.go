package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

// ArticleService defines article operations exposed to handlers
type ArticleService interface {
	Get(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context, params repository.ArticleListParams) ([]models.Article, error)
	UpdateVotes(ctx context.Context, id string, payload map[string]json.RawMessage) (*models.Article, error)
}

// CommentService defines comment operations exposed to handlers
type CommentService interface {
	Get(ctx context.Context, id string) (*models.Comment, error)
	ListForArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	Create(ctx context.Context, articleID string, payload map[string]json.RawMessage) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id string, payload map[string]json.RawMessage) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// TopicService defines topic operations exposed to handlers
type TopicService interface {
	List(ctx context.Context) ([]models.Topic, error)
}

// UserService defines user operations exposed to handlers
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Topic   TopicService
	User    UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article: newArticleService(repos, cfg, log),
		Comment: newCommentService(repos, log),
		Topic:   newTopicService(repos, log),
		User:    newUserService(repos, log),
	}
}

// parseID converts a path parameter to a numeric ID. Non-numeric input is
// rejected here, before any query reaches storage.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest("Invalid ID")
	}
	return id, nil
}
