package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/nc-news-api/internal/apperr"
)

func classify(err error) (classification, bool) {
	for _, classify := range classifierChain {
		if result, ok := classify(err); ok {
			return result, true
		}
	}
	return classification{}, false
}

func TestClassifyTaggedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantMsg    string
	}{
		{
			name:       "bad request with message",
			err:        apperr.BadRequest("Invalid ID"),
			wantStatus: 400,
			wantError:  "Bad Request",
			wantMsg:    "Invalid ID",
		},
		{
			name:       "not found with message",
			err:        apperr.NotFound("Article does not exist"),
			wantStatus: 404,
			wantError:  "Not Found",
			wantMsg:    "Article does not exist",
		},
		{
			name:       "unauthorised carries no message",
			err:        apperr.Unauthorised(),
			wantStatus: 401,
			wantError:  "Unauthorised",
		},
		{
			name:       "tagged error survives wrapping",
			err:        fmt.Errorf("updating votes: %w", apperr.NotFound("Comment does not exist")),
			wantStatus: 404,
			wantError:  "Not Found",
			wantMsg:    "Comment does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := classify(tt.err)
			if !ok {
				t.Fatal("Expected the chain to classify the error")
			}
			if result.status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, result.status)
			}
			if result.body["error"] != tt.wantError {
				t.Errorf("Expected error %q, got %v", tt.wantError, result.body["error"])
			}
			if tt.wantMsg == "" {
				if _, ok := result.body["msg"]; ok {
					t.Errorf("Expected no msg, got %v", result.body["msg"])
				}
			} else if result.body["msg"] != tt.wantMsg {
				t.Errorf("Expected msg %q, got %v", tt.wantMsg, result.body["msg"])
			}
		})
	}
}

func TestClassifyDriverErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid text representation",
			err:        &pq.Error{Code: "22P02"},
			wantStatus: 400,
			wantError:  "Bad Request",
		},
		{
			name:       "article foreign key violation",
			err:        &pq.Error{Code: "23503", Constraint: "comments_article_id_fkey"},
			wantStatus: 404,
			wantError:  "Not Found",
		},
		{
			name:       "author foreign key violation",
			err:        &pq.Error{Code: "23503", Constraint: "comments_author_fkey"},
			wantStatus: 401,
			wantError:  "Unauthorised",
		},
		{
			name:       "driver error survives wrapping",
			err:        fmt.Errorf("inserting comment: %w", &pq.Error{Code: "22P02"}),
			wantStatus: 400,
			wantError:  "Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := classify(tt.err)
			if !ok {
				t.Fatal("Expected the chain to classify the error")
			}
			if result.status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, result.status)
			}
			if result.body["error"] != tt.wantError {
				t.Errorf("Expected error %q, got %v", tt.wantError, result.body["error"])
			}
		})
	}
}

func TestClassifyUnrecognizedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("connection reset by peer")},
		{"unrelated pq code", &pq.Error{Code: "23505", Constraint: "topics_pkey"}},
		{"fk violation on an unknown constraint", &pq.Error{Code: "23503", Constraint: "articles_topic_fkey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := classify(tt.err); ok {
				t.Errorf("Expected %v to fall through to the generic handler", tt.err)
			}
		})
	}
}

func TestClassifierPriority(t *testing.T) {
	// A tagged error wrapping a driver error must classify by its tag,
	// not by the driver code underneath.
	cause := &pq.Error{Code: "22P02"}
	err := fmt.Errorf("%w", &apperr.Error{
		Status: 404,
		Kind:   apperr.KindNotFound,
		Msg:    "Article does not exist",
		Cause:  cause,
	})

	result, ok := classify(err)
	if !ok {
		t.Fatal("Expected the chain to classify the error")
	}
	if result.status != 404 {
		t.Errorf("Tagged classification must win, got status %d", result.status)
	}
}
