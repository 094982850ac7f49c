// internal/transport/rest/blog.go
package rest

import (
	"net/http"
	"strconv"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/models"
	blogposts "remedypedia/internal/workers/content/blog-posts"

	"github.com/gorilla/mux"
)

func (s *server) blogAvailable(w http.ResponseWriter, r *http.Request) bool {
	if s.blog == nil {
		s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Blog store"))
		return false
	}
	return true
}

func listOptions(r *http.Request) blogposts.ListOptions {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	featured, _ := strconv.ParseBool(q.Get("featured"))
	return blogposts.ListOptions{
		FeaturedOnly: featured,
		Category:     q.Get("category"),
		Limit:        limit,
		Offset:       offset,
	}
}

// GET /blog-posts
func (s *server) listPublishedPosts(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	opts := listOptions(r)
	opts.PublishedOnly = true

	out, err := s.blog.List(r.Context(), opts)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /blog-posts/{id}
func (s *server) getPublishedPost(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	id := mux.Vars(r)["id"]
	post, err := s.blog.Get(r.Context(), id)
	s.writePublished(w, r, post, id, err)
}

// GET /blog-posts/slug/{slug}
func (s *server) getPublishedPostBySlug(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	slug := mux.Vars(r)["slug"]
	post, err := s.blog.GetBySlug(r.Context(), slug)
	s.writePublished(w, r, post, slug, err)
}

// writePublished hides drafts from public readers.
func (s *server) writePublished(w http.ResponseWriter, r *http.Request, post *models.BlogPost, key string, err error) {
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	if !post.Published {
		s.errors.WriteError(w, r, errors.NewResourceNotFoundError("blog post", key))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GET /admin/blog-posts
func (s *server) listAllPosts(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	out, err := s.blog.List(r.Context(), listOptions(r))
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /admin/blog-posts
func (s *server) createPost(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	var input blogposts.PostInput
	if err := s.decodeBody(r, "admin-blog-post-create", &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	if session := sessionFromContext(r.Context()); session != nil && input.Author == "" {
		input.Author = session.Username
	}

	post, err := s.blog.Create(r.Context(), &input)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// PUT /admin/blog-posts/{id}
func (s *server) updatePost(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	var input blogposts.PostInput
	if err := s.decodeBody(r, "admin-blog-post-update", &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}

	post, err := s.blog.Update(r.Context(), mux.Vars(r)["id"], &input)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DELETE /admin/blog-posts/{id}
func (s *server) deletePost(w http.ResponseWriter, r *http.Request) {
	if !s.blogAvailable(w, r) {
		return
	}
	if err := s.blog.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
