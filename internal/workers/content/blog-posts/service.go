// Package blogposts stores and serves blog articles.
package blogposts

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const resourceName = "blog post"

type Service struct {
	config *Config
	logger logger.Logger
	db     *sql.DB
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config, db *sql.DB) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{
		config: config,
		logger: deps.Logger.With(map[string]interface{}{"component": "blog-posts"}),
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, input *PostInput) (*models.BlogPost, error) {
	in, err := normalize(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	now := s.now()
	post := postFromInput(uuid.NewString(), in, now, now)

	_, err = s.db.ExecContext(ctx, insertPost,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Author, post.Category,
		pq.Array(post.Tags), post.ImageURL, post.Featured, post.Published,
		post.MetaTitle, post.MetaDescription, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return nil, s.writeError("create blog post", post.Slug, err)
	}

	s.logger.Info("blog post created", map[string]interface{}{
		"id":        post.ID,
		"slug":      post.Slug,
		"published": post.Published,
	})
	return post, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewResourceNotFoundError(resourceName, id)
	}
	return s.getOne(ctx, selectPostByID, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if slug == "" {
		return nil, errors.NewResourceNotFoundError(resourceName, slug)
	}
	return s.getOne(ctx, selectPostBySlug, slug)
}

func (s *Service) getOne(ctx context.Context, query, key string) (*models.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	post, err := scanPost(s.db.QueryRowContext(ctx, query, key))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewResourceNotFoundError(resourceName, key)
	}
	if err != nil {
		s.logger.Error("blog post lookup failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return nil, errors.NewDatabaseError("get blog post", err)
	}
	return post, nil
}

// List returns posts newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListOutput, error) {
	if opts.Limit <= 0 {
		opts.Limit = s.config.DefaultLimit
	}
	if opts.Limit > s.config.MaxLimit {
		opts.Limit = s.config.MaxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	query, args := buildListQuery(opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("list blog posts", err)
	}
	defer rows.Close()

	posts := make([]*models.BlogPost, 0, opts.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, errors.NewDatabaseError("list blog posts", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("list blog posts", err)
	}

	return &ListOutput{
		Posts:  posts,
		Count:  len(posts),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}, nil
}

// Update replaces every writable field of the post.
func (s *Service) Update(ctx context.Context, id string, input *PostInput) (*models.BlogPost, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewResourceNotFoundError(resourceName, id)
	}
	in, err := normalize(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	now := s.now()
	post := postFromInput(id, in, time.Time{}, now)

	err = s.db.QueryRowContext(ctx, updatePost,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Author, post.Category,
		pq.Array(post.Tags), post.ImageURL, post.Featured, post.Published,
		post.MetaTitle, post.MetaDescription, post.UpdatedAt,
	).Scan(&post.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewResourceNotFoundError(resourceName, id)
	}
	if err != nil {
		return nil, s.writeError("update blog post", post.Slug, err)
	}

	s.logger.Info("blog post updated", map[string]interface{}{
		"id":   post.ID,
		"slug": post.Slug,
	})
	return post, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewResourceNotFoundError(resourceName, id)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return errors.NewDatabaseError("delete blog post", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("delete blog post", err)
	}
	if affected == 0 {
		return errors.NewResourceNotFoundError(resourceName, id)
	}

	s.logger.Info("blog post deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) writeError(operation, slug string, err error) error {
	if isUniqueViolation(err) {
		return errors.NewConflictError(resourceName, "slug already exists: "+slug)
	}
	s.logger.Error("blog post write failed", map[string]interface{}{
		"operation": operation,
		"slug":      slug,
		"error":     err,
	})
	return errors.NewDatabaseError(operation, err)
}

func postFromInput(id string, in *PostInput, createdAt, updatedAt time.Time) *models.BlogPost {
	return &models.BlogPost{
		ID:              id,
		Title:           in.Title,
		Slug:            in.Slug,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		Author:          in.Author,
		Category:        in.Category,
		Tags:            in.Tags,
		ImageURL:        in.ImageURL,
		Featured:        in.Featured,
		Published:       in.Published,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
