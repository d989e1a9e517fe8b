package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) UserService {
	return &userService{
		users: repos.User,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get retrieves a single user by username
func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.users.SelectByUsername(ctx, username)
}
