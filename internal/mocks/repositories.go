package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
// It mirrors the real repository's contract, including tagged NotFound
// errors for missing rows and derived comment counts.
type MockArticleRepository struct {
	Articles       map[int]*models.Article
	CommentCounts  map[int]int
	ListResult     []models.Article
	LastListParams repository.ArticleListParams
	ListCalls      int
	Err            error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:      make(map[int]*models.Article),
		CommentCounts: make(map[int]int),
	}
}

func (m *MockArticleRepository) SelectByID(ctx context.Context, id int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, apperr.NotFound("Article does not exist")
	}
	copied := *article
	copied.CommentCount = m.CommentCounts[id]
	return &copied, nil
}

func (m *MockArticleRepository) List(ctx context.Context, params repository.ArticleListParams) ([]models.Article, error) {
	m.ListCalls++
	m.LastListParams = params
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ListResult != nil {
		return m.ListResult, nil
	}
	return []models.Article{}, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, apperr.NotFound("Article does not exist")
	}
	article.Votes += delta
	copied := *article
	copied.CommentCount = m.CommentCounts[id]
	return &copied, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return apperr.NotFound("Article does not exist")
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository.
// KnownArticles and KnownAuthors stand in for the database's foreign key
// constraints: inserts referencing a missing article fail NotFound and
// inserts from an unknown author fail Unauthorised, matching the
// translation the real repository applies.
type MockCommentRepository struct {
	Comments      map[int]*models.Comment
	KnownArticles map[int]bool
	KnownAuthors  map[string]bool
	NextID        int
	Err           error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments:      make(map[int]*models.Comment),
		KnownArticles: make(map[int]bool),
		KnownAuthors:  make(map[string]bool),
		NextID:        1,
	}
}

func (m *MockCommentRepository) SelectByID(ctx context.Context, id int) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment, ok := m.Comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment does not exist")
	}
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]models.Comment, 0)
	for _, comment := range m.Comments {
		if comment.ArticleID == articleID {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Insert(ctx context.Context, articleID int, author, body string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !m.KnownArticles[articleID] {
		return nil, apperr.NotFound("Article does not exist")
	}
	if !m.KnownAuthors[author] {
		return nil, apperr.Unauthorised()
	}

	comment := &models.Comment{
		ID:        m.NextID,
		Body:      body,
		ArticleID: articleID,
		Author:    author,
		Votes:     0,
		CreatedAt: time.Now(),
	}
	m.Comments[comment.ID] = comment
	m.NextID++

	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment, ok := m.Comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment does not exist")
	}
	comment.Votes += delta
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return apperr.NotFound("Comment does not exist")
	}
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	Topics []models.Topic
	Err    error
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Topics == nil {
		return []models.Topic{}, nil
	}
	return m.Topics, nil
}

func (m *MockTopicRepository) CheckExists(ctx context.Context, slug string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, topic := range m.Topics {
		if topic.Slug == slug {
			return nil
		}
	}
	return apperr.NotFound(fmt.Sprintf("The topic %q does not exist", slug))
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	return len(m.Topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	users := make([]models.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

func (m *MockUserRepository) SelectByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.Users[username]
	if !ok {
		return nil, apperr.NotFound("User does not exist")
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}
