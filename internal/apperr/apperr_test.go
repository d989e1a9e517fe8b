package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantKind   string
	}{
		{"bad request", BadRequest("Invalid ID"), 400, KindBadRequest},
		{"not found", NotFound("Article does not exist"), 404, KindNotFound},
		{"unauthorised", Unauthorised(), 401, KindUnauthorised},
		{"internal", Internal(errors.New("boom")), 500, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, tt.err.Status)
			}
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Expected kind %q, got %q", tt.wantKind, tt.err.Kind)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := NotFound("Article does not exist")
	if err.Error() != "Not Found: Article does not exist" {
		t.Errorf("Unexpected error string: %q", err.Error())
	}

	if Unauthorised().Error() != "Unauthorised" {
		t.Errorf("Unexpected error string: %q", Unauthorised().Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should traverse to the cause")
	}

	wrapped := fmt.Errorf("listing articles: %w", BadRequest("Invalid ID"))
	var appErr *Error
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should find *Error through wrapping")
	}
	if appErr.Status != 400 {
		t.Errorf("Expected status 400, got %d", appErr.Status)
	}
}
