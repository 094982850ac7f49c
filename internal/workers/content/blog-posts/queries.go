package blogposts

import (
	"errors"
	"fmt"
	"strings"

	"remedypedia/internal/models"

	"github.com/lib/pq"
)

const postColumns = `id, title, slug, excerpt, content, author, category, tags, image_url, featured, published, meta_title, meta_description, created_at, updated_at`

const (
	selectPostByID   = `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`
	selectPostBySlug = `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1`

	insertPost = `INSERT INTO blog_posts (` + postColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	updatePost = `UPDATE blog_posts SET title = $2, slug = $3, excerpt = $4, content = $5, author = $6, category = $7, tags = $8, image_url = $9, featured = $10, published = $11, meta_title = $12, meta_description = $13, updated_at = $14 WHERE id = $1 RETURNING created_at`

	deletePost = `DELETE FROM blog_posts WHERE id = $1`
)

// uniqueViolation is the postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.BlogPost, error) {
	var p models.BlogPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Author, &p.Category,
		pq.Array(&p.Tags), &p.ImageURL, &p.Featured, &p.Published,
		&p.MetaTitle, &p.MetaDescription, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// buildListQuery returns the filtered list statement and its arguments.
func buildListQuery(opts ListOptions) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if opts.PublishedOnly {
		args = append(args, true)
		where = append(where, fmt.Sprintf("published = $%d", len(args)))
	}
	if opts.FeaturedOnly {
		args = append(args, true)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM blog_posts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, opts.Limit, opts.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return query, args
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
