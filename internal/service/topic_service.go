package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

type topicService struct {
	topics repository.TopicRepository
	log    zerolog.Logger
}

func newTopicService(repos *repository.Repositories, log zerolog.Logger) TopicService {
	return &topicService{
		topics: repos.Topic,
		log:    log.With().Str("service", "topic").Logger(),
	}
}

// List retrieves all topics
func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	return s.topics.List(ctx)
}
