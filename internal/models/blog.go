// internal/models/blog.go
package models

import "time"

// BlogPost is a blog article owned by the content store.
type BlogPost struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	Excerpt         string    `json:"excerpt" db:"excerpt"`
	Content         string    `json:"content" db:"content"`
	Author          string    `json:"author" db:"author"`
	Category        string    `json:"category" db:"category"`
	Tags            []string  `json:"tags" db:"tags"`
	ImageURL        string    `json:"image_url" db:"image_url"`
	Featured        bool      `json:"featured" db:"featured"`
	Published       bool      `json:"published" db:"published"`
	MetaTitle       string    `json:"meta_title" db:"meta_title"`
	MetaDescription string    `json:"meta_description" db:"meta_description"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
