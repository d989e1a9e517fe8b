package repository

import (
	"context"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// ArticleRepository defines the interface for article data operations.
// Select-by-id operations that find zero rows fail with a tagged NotFound
// error naming the missing entity; that contract is not deferred to callers.
type ArticleRepository interface {
	SelectByID(ctx context.Context, id int) (*models.Article, error)
	List(ctx context.Context, params ArticleListParams) ([]models.Article, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error)
	Exists(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	SelectByID(ctx context.Context, id int) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error)
	Insert(ctx context.Context, articleID int, author, body string) (*models.Comment, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	CheckExists(ctx context.Context, slug string) error
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	SelectByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
	Topic   TopicRepository
	User    UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
	}
}
