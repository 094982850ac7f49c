// internal/transport/rest/router.go
package rest

import (
	"context"
	"fmt"
	"net/http"

	"remedypedia/internal/common/config"
	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/observability"
	"remedypedia/internal/models"
	adminsession "remedypedia/internal/workers/auth/admin-session"
	newslettersubscribe "remedypedia/internal/workers/communication/newsletter-subscribe"
	blogposts "remedypedia/internal/workers/content/blog-posts"
	generatequestions "remedypedia/internal/workers/remedy/generate-clarification-questions"
	generateremedies "remedypedia/internal/workers/remedy/generate-remedies"
	"remedypedia/pkg/registry"

	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"
)

type QuestionGenerator interface {
	Execute(ctx context.Context, input *generatequestions.Input) (*generatequestions.Output, error)
}

type RemedyGenerator interface {
	Execute(ctx context.Context, input *generateremedies.Input) (*models.RemedyResponse, error)
}

type BlogStore interface {
	Create(ctx context.Context, input *blogposts.PostInput) (*models.BlogPost, error)
	Get(ctx context.Context, id string) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, opts blogposts.ListOptions) (*blogposts.ListOutput, error)
	Update(ctx context.Context, id string, input *blogposts.PostInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type NewsletterSubscriber interface {
	Execute(ctx context.Context, input *newslettersubscribe.Input) (*newslettersubscribe.Output, error)
}

type SessionManager interface {
	Login(ctx context.Context, input *adminsession.LoginInput) (*adminsession.LoginOutput, error)
	GetSession(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
}

// Container holds the router's dependencies. Nil collaborators answer 503.
type Container struct {
	Config        *config.Config
	Logger        logger.Logger
	Registry      *registry.OperationRegistry
	Observability *observability.Observability

	Questions  QuestionGenerator
	Remedies   RemedyGenerator
	Blog       BlogStore
	Newsletter NewsletterSubscriber
	Sessions   SessionManager
}

type server struct {
	cfg      *config.Config
	logger   logger.Logger
	obs      *observability.Observability
	errors   *errors.ErrorHandler
	schemas  map[string]*gojsonschema.Schema
	registry *registry.OperationRegistry

	questions  QuestionGenerator
	remedies   RemedyGenerator
	blog       BlogStore
	newsletter NewsletterSubscriber
	sessions   SessionManager
}

// NewRouter mounts every operation of the registry on a mux router.
func NewRouter(c *Container) (*mux.Router, error) {
	if c.Config == nil || c.Logger == nil {
		return nil, fmt.Errorf("router requires config and logger")
	}
	reg := c.Registry
	if reg == nil {
		var err error
		if reg, err = registry.Default(); err != nil {
			return nil, err
		}
	}

	s := &server{
		cfg:        c.Config,
		logger:     c.Logger,
		obs:        c.Observability,
		errors:     errors.NewErrorHandler(c.Logger),
		schemas:    make(map[string]*gojsonschema.Schema),
		registry:   reg,
		questions:  c.Questions,
		remedies:   c.Remedies,
		blog:       c.Blog,
		newsletter: c.Newsletter,
		sessions:   c.Sessions,
	}
	for _, op := range reg.Operations {
		schema, err := op.CompileInputSchema()
		if err != nil {
			return nil, err
		}
		if schema != nil {
			s.schemas[op.ID] = schema
		}
	}

	r := mux.NewRouter()
	r.Use(s.cors, s.recoverer, s.instrument)

	handlers := map[string]http.HandlerFunc{
		config.OperationGenerateQuestions: s.generateQuestions,
		config.OperationGenerateRemedies:  s.generateRemedies,
		"blog-posts-list":                 s.listPublishedPosts,
		"blog-post-get":                   s.getPublishedPost,
		"blog-post-get-by-slug":           s.getPublishedPostBySlug,
		"admin-blog-posts-list":           s.listAllPosts,
		"admin-blog-post-create":          s.createPost,
		"admin-blog-post-update":          s.updatePost,
		"admin-blog-post-delete":          s.deletePost,
		"newsletter-subscribe":            s.subscribe,
		"auth-login":                      s.login,
		"auth-session":                    s.currentSession,
		"auth-logout":                     s.logout,
	}

	public := r.NewRoute().Subrouter()
	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireSession)

	for _, op := range reg.Operations {
		h, ok := handlers[op.ID]
		if !ok {
			return nil, fmt.Errorf("operation %s has no handler", op.ID)
		}
		target := public
		if op.AuthRequired {
			target = protected
		}
		target.Handle(op.Path, h).Methods(op.Method, http.MethodOptions).Name(op.ID)
	}

	return r, nil
}
