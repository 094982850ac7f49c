package blogposts

import (
	"remedypedia/internal/common/logger"
	"remedypedia/internal/models"
)

// PostInput is the writable part of a blog post.
type PostInput struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Content         string   `json:"content"`
	Author          string   `json:"author,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Featured        bool     `json:"featured"`
	Published       bool     `json:"published"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
}

type ListOptions struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Category      string
	Limit         int
	Offset        int
}

type ListOutput struct {
	Posts  []*models.BlogPost `json:"posts"`
	Count  int                `json:"count"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
