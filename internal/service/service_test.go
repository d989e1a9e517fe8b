package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/mocks"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/service"
)

type testRepos struct {
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	topics   *mocks.MockTopicRepository
	users    *mocks.MockUserRepository
}

func setupServices() (*service.Services, *testRepos) {
	repos := &testRepos{
		articles: mocks.NewMockArticleRepository(),
		comments: mocks.NewMockCommentRepository(),
		topics:   mocks.NewMockTopicRepository(),
		users:    mocks.NewMockUserRepository(),
	}

	cfg := &config.Config{
		API: config.APIConfig{DefaultPageSize: 10},
	}

	services := service.NewServices(&repository.Repositories{
		Article: repos.articles,
		Comment: repos.comments,
		Topic:   repos.topics,
		User:    repos.users,
	}, cfg, zerolog.Nop())

	return services, repos
}

func seedArticle(repos *testRepos, id, votes int) {
	repos.articles.Articles[id] = &models.Article{
		ID:        id,
		Title:     "Living in the shadow of a great man",
		Topic:     "mitch",
		Author:    "butter_bridge",
		Body:      "I find this existence challenging",
		CreatedAt: time.Now(),
		Votes:     votes,
	}
}

func votePayload(raw string) map[string]json.RawMessage {
	return map[string]json.RawMessage{"inc_votes": json.RawMessage(raw)}
}

func assertStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected *apperr.Error, got %v (%T)", err, err)
	}
	if appErr.Status != wantStatus {
		t.Errorf("Expected status %d, got %d (%v)", wantStatus, appErr.Status, appErr)
	}
}

func TestArticleUpdateVotesAtomicDelta(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	seedArticle(repos, 1, 100)

	article, err := services.Article.UpdateVotes(ctx, "1", votePayload("11"))
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if article.Votes != 111 {
		t.Errorf("Expected 111 votes, got %d", article.Votes)
	}

	// Negative deltas are permitted and can drive votes below the baseline
	article, err = services.Article.UpdateVotes(ctx, "1", votePayload("-1"))
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if article.Votes != 110 {
		t.Errorf("Expected 110 votes, got %d", article.Votes)
	}

	if repos.articles.Articles[1].Votes != 110 {
		t.Errorf("Expected stored votes 110, got %d", repos.articles.Articles[1].Votes)
	}
}

func TestArticleUpdateVotesValidation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		payload    map[string]json.RawMessage
		wantStatus int
	}{
		{
			name:       "misspelled key",
			id:         "1",
			payload:    map[string]json.RawMessage{"increment_votes": json.RawMessage("1")},
			wantStatus: 400,
		},
		{
			name: "extra key alongside inc_votes",
			id:   "1",
			payload: map[string]json.RawMessage{
				"inc_votes": json.RawMessage("1"),
				"NewTitle":  json.RawMessage(`"New title"`),
			},
			wantStatus: 400,
		},
		{
			name:       "empty payload",
			id:         "1",
			payload:    map[string]json.RawMessage{},
			wantStatus: 400,
		},
		{
			name:       "non-numeric delta",
			id:         "1",
			payload:    votePayload(`"eleven"`),
			wantStatus: 400,
		},
		{
			name:       "non-numeric article id",
			id:         "myfavouritearticle",
			payload:    votePayload("1"),
			wantStatus: 400,
		},
		{
			name:       "unknown article id",
			id:         "999",
			payload:    votePayload("1"),
			wantStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, repos := setupServices()
			seedArticle(repos, 1, 100)

			_, err := services.Article.UpdateVotes(context.Background(), tt.id, tt.payload)
			if err == nil {
				t.Fatal("Expected an error")
			}
			assertStatus(t, err, tt.wantStatus)

			if repos.articles.Articles[1].Votes != 100 {
				t.Errorf("Votes must be untouched on failure, got %d", repos.articles.Articles[1].Votes)
			}
		})
	}
}

func TestArticleListTopicGate(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	repos.topics.Topics = []models.Topic{{Slug: "mitch", Description: "The man, the Mitch"}}

	// Known topic passes through to the repository
	if _, err := services.Article.List(ctx, repository.ArticleListParams{Topic: "mitch"}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if repos.articles.ListCalls != 1 {
		t.Errorf("Expected 1 list call, got %d", repos.articles.ListCalls)
	}

	// Unknown topic is a 404 before any listing query runs
	_, err := services.Article.List(ctx, repository.ArticleListParams{Topic: "gardening"})
	if err == nil {
		t.Fatal("Expected an error")
	}
	assertStatus(t, err, 404)
	if repos.articles.ListCalls != 1 {
		t.Errorf("Listing must not run for an unknown topic, got %d calls", repos.articles.ListCalls)
	}
}

func TestArticleListDefaultPageSize(t *testing.T) {
	services, repos := setupServices()

	if _, err := services.Article.List(context.Background(), repository.ArticleListParams{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if repos.articles.LastListParams.Limit != 10 {
		t.Errorf("Expected default limit 10, got %d", repos.articles.LastListParams.Limit)
	}
}

func TestCommentCreate(t *testing.T) {
	commentPayload := func(author, body string) map[string]json.RawMessage {
		p := make(map[string]json.RawMessage)
		if author != "" {
			p["author"] = json.RawMessage(`"` + author + `"`)
		}
		if body != "" {
			p["body"] = json.RawMessage(`"` + body + `"`)
		}
		return p
	}

	tests := []struct {
		name       string
		articleID  string
		payload    map[string]json.RawMessage
		wantStatus int
	}{
		{
			name:       "missing body key",
			articleID:  "1",
			payload:    commentPayload("butter_bridge", ""),
			wantStatus: 400,
		},
		{
			name:      "extra key",
			articleID: "1",
			payload: map[string]json.RawMessage{
				"author": json.RawMessage(`"butter_bridge"`),
				"body":   json.RawMessage(`"This is a comment"`),
				"title":  json.RawMessage(`"This is a title"`),
			},
			wantStatus: 400,
		},
		{
			name:       "non-numeric article id",
			articleID:  "myfavouritearticle",
			payload:    commentPayload("butter_bridge", "This is a comment"),
			wantStatus: 400,
		},
		{
			name:       "unknown author",
			articleID:  "1",
			payload:    commentPayload("Harrie", "This is a comment"),
			wantStatus: 401,
		},
		{
			name:       "unknown article",
			articleID:  "999",
			payload:    commentPayload("butter_bridge", "This is a comment"),
			wantStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, repos := setupServices()
			repos.comments.KnownArticles[1] = true
			repos.comments.KnownAuthors["butter_bridge"] = true

			_, err := services.Comment.Create(context.Background(), tt.articleID, tt.payload)
			if err == nil {
				t.Fatal("Expected an error")
			}
			assertStatus(t, err, tt.wantStatus)
		})
	}

	t.Run("valid comment is created", func(t *testing.T) {
		services, repos := setupServices()
		repos.comments.KnownArticles[1] = true
		repos.comments.KnownAuthors["butter_bridge"] = true

		comment, err := services.Comment.Create(context.Background(), "1",
			commentPayload("butter_bridge", "This is a comment"))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if comment.ID == 0 {
			t.Error("Expected an assigned comment id")
		}
		if comment.Author != "butter_bridge" || comment.Body != "This is a comment" {
			t.Errorf("Unexpected comment: %+v", comment)
		}
		if comment.ArticleID != 1 {
			t.Errorf("Expected article_id 1, got %d", comment.ArticleID)
		}
		if comment.Votes != 0 {
			t.Errorf("New comments start at 0 votes, got %d", comment.Votes)
		}
	})
}

func TestCommentListForArticleGate(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	seedArticle(repos, 2, 0)

	// Existing article with no comments is an empty list, not an error
	comments, err := services.Comment.ListForArticle(ctx, "2")
	if err != nil {
		t.Fatalf("ListForArticle failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Expected no comments, got %d", len(comments))
	}

	_, err = services.Comment.ListForArticle(ctx, "999")
	if err == nil {
		t.Fatal("Expected an error for an unknown article")
	}
	assertStatus(t, err, 404)

	_, err = services.Comment.ListForArticle(ctx, "mitch")
	if err == nil {
		t.Fatal("Expected an error for a non-numeric id")
	}
	assertStatus(t, err, 400)
}

func TestCommentDeleteTwice(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	repos.comments.Comments[1] = &models.Comment{ID: 1, Body: "gone soon", ArticleID: 1, Author: "butter_bridge"}

	if err := services.Comment.Delete(ctx, "1"); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}

	err := services.Comment.Delete(ctx, "1")
	if err == nil {
		t.Fatal("Second delete must fail")
	}
	assertStatus(t, err, 404)
}

func TestCommentUpdateVotes(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	repos.comments.Comments[5] = &models.Comment{ID: 5, Body: "hot take", ArticleID: 1, Author: "butter_bridge", Votes: 3}

	comment, err := services.Comment.UpdateVotes(ctx, "5", votePayload("-4"))
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if comment.Votes != -1 {
		t.Errorf("Expected -1 votes (no floor enforced), got %d", comment.Votes)
	}

	_, err = services.Comment.UpdateVotes(ctx, "999", votePayload("1"))
	if err == nil {
		t.Fatal("Expected an error for an unknown comment")
	}
	assertStatus(t, err, 404)
}

func TestUserGet(t *testing.T) {
	services, repos := setupServices()
	ctx := context.Background()
	repos.users.Users["butter_bridge"] = &models.User{
		Username:  "butter_bridge",
		Name:      "jonny",
		AvatarURL: "https://example.com/avatar.jpg",
	}

	user, err := services.User.Get(ctx, "butter_bridge")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user.Name != "jonny" {
		t.Errorf("Expected name jonny, got %q", user.Name)
	}

	_, err = services.User.Get(ctx, "nobody")
	if err == nil {
		t.Fatal("Expected an error for an unknown user")
	}
	assertStatus(t, err, 404)
}
