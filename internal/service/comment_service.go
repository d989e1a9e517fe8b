package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/validation"
)

// commentKeys is the required key set for comment creation payloads
var commentKeys = []string{"author", "body"}

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) CommentService {
	return &commentService{
		comments: repos.Comment,
		articles: repos.Article,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Get retrieves a single comment
func (s *commentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	commentID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.comments.SelectByID(ctx, commentID)
}

// ListForArticle retrieves all comments on an article, most recent first.
// The article must exist; an article with no comments is an empty list,
// not an error.
func (s *commentService) ListForArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	id, err := parseID(articleID)
	if err != nil {
		return nil, err
	}
	if err := s.articles.Exists(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.ListByArticle(ctx, id)
}

// Create posts a comment on an article. The payload must contain exactly
// author and body; referential failures surface as tagged errors from the
// repository (missing article is NotFound, unknown author Unauthorised).
func (s *commentService) Create(ctx context.Context, articleID string, payload map[string]json.RawMessage) (*models.Comment, error) {
	received := make([]string, 0, len(payload))
	for key := range payload {
		received = append(received, key)
	}
	if err := validation.Keys(received, commentKeys, validation.MatchExact); err != nil {
		return nil, err
	}

	var author, body string
	if err := json.Unmarshal(payload["author"], &author); err != nil {
		return nil, apperr.BadRequest("Invalid or missing keys")
	}
	if err := json.Unmarshal(payload["body"], &body); err != nil {
		return nil, apperr.BadRequest("Invalid or missing keys")
	}

	id, err := parseID(articleID)
	if err != nil {
		return nil, err
	}

	return s.comments.Insert(ctx, id, author, body)
}

// UpdateVotes applies a vote delta to a comment. The comment must exist
// and the payload may contain only inc_votes.
func (s *commentService) UpdateVotes(ctx context.Context, id string, payload map[string]json.RawMessage) (*models.Comment, error) {
	commentID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.comments.SelectByID(ctx, commentID); err != nil {
		return nil, err
	}

	delta, err := parseVoteDelta(payload)
	if err != nil {
		return nil, err
	}

	return s.comments.IncrementVotes(ctx, commentID, delta)
}

// Delete removes a comment by ID
func (s *commentService) Delete(ctx context.Context, id string) error {
	commentID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}
