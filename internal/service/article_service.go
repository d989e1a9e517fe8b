package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/validation"
)

// voteKeys is the allowed key set for vote-delta patch payloads
var voteKeys = []string{"inc_votes"}

type articleService struct {
	articles        repository.ArticleRepository
	topics          repository.TopicRepository
	defaultPageSize int
	log             zerolog.Logger
}

func newArticleService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) ArticleService {
	return &articleService{
		articles:        repos.Article,
		topics:          repos.Topic,
		defaultPageSize: cfg.API.DefaultPageSize,
		log:             log.With().Str("service", "article").Logger(),
	}
}

// Get retrieves a single article with its live comment count
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	articleID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.articles.SelectByID(ctx, articleID)
}

// List retrieves articles. A topic filter is gated on the topic existing,
// so an unknown topic is NotFound rather than an empty page.
func (s *articleService) List(ctx context.Context, params repository.ArticleListParams) ([]models.Article, error) {
	if params.Topic != "" {
		if err := s.topics.CheckExists(ctx, params.Topic); err != nil {
			return nil, err
		}
	}
	if params.Limit <= 0 {
		params.Limit = s.defaultPageSize
	}
	return s.articles.List(ctx, params)
}

// UpdateVotes applies a vote delta to an article. The article must exist
// and the payload may contain only inc_votes.
func (s *articleService) UpdateVotes(ctx context.Context, id string, payload map[string]json.RawMessage) (*models.Article, error) {
	articleID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.articles.Exists(ctx, articleID); err != nil {
		return nil, err
	}

	delta, err := parseVoteDelta(payload)
	if err != nil {
		return nil, err
	}

	return s.articles.IncrementVotes(ctx, articleID, delta)
}

// parseVoteDelta validates a vote patch payload and extracts the signed
// delta. Negative deltas are permitted; no floor is enforced.
func parseVoteDelta(payload map[string]json.RawMessage) (int, error) {
	received := make([]string, 0, len(payload))
	for key := range payload {
		received = append(received, key)
	}
	if err := validation.Keys(received, voteKeys, validation.MatchSubset); err != nil {
		return 0, err
	}

	var delta int
	if err := json.Unmarshal(payload["inc_votes"], &delta); err != nil {
		return 0, apperr.BadRequest("Invalid ID")
	}
	return delta, nil
}
