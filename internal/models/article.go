package models

import (
	"time"
)

// Article represents an article in the system. CommentCount is derived
// from the comments table on every read and is never stored.
type Article struct {
	ID           int       `json:"article_id" db:"article_id"`
	Title        string    `json:"title" db:"title"`
	Topic        string    `json:"topic" db:"topic"`
	Author       string    `json:"author" db:"author"`
	Body         string    `json:"body,omitempty" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Votes        int       `json:"votes" db:"votes"`
	ImageURL     string    `json:"article_img_url" db:"article_img_url"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
}
