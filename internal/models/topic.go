package models

// Topic represents an article topic, keyed by its slug
type Topic struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}
