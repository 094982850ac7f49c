// internal/transport/rest/middleware.go
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/metrics"
	"remedypedia/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const sessionKey contextKey = "session"

func (s *server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cors := s.cfg.Server.CORS
		w.Header().Set("Access-Control-Allow-Origin", cors.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", cors.AllowedHeaders)
		w.Header().Set("Access-Control-Allow-Methods", cors.AllowedMethods)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// recoverer turns a panic into INTERNAL_ERROR so one request cannot take the process down.
func (s *server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.errors.WriteError(w, r, errors.NewInternalError(fmt.Errorf("%v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// instrument tags the request with an id, logs it and records HTTP metrics
// labelled by route template.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		reqLogger := s.logger.With(map[string]interface{}{"requestId": requestID})
		r = r.WithContext(logger.IntoContext(r.Context(), reqLogger))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		metrics.HTTPRequestsActive.WithLabelValues(route).Inc()
		defer metrics.HTTPRequestsActive.WithLabelValues(route).Dec()

		next.ServeHTTP(rec, r)

		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		reqLogger.Info("http request", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"route":    route,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}

// requireSession admits requests carrying a live admin session. JSON clients get 401,
// browsers are redirected to the login page.
func (s *server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessions == nil {
			s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Session store"))
			return
		}

		token := s.sessionToken(r)
		if token == "" {
			s.rejectSession(w, r, errors.NewSessionNotFoundError())
			return
		}

		session, err := s.sessions.GetSession(r.Context(), token)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeSessionNotFound) {
				s.rejectSession(w, r, err)
				return
			}
			s.errors.WriteError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) rejectSession(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		s.errors.WriteError(w, r, err)
		return
	}
	http.Redirect(w, r, s.cfg.Auth.Session.LoginRedirectURL, http.StatusFound)
}

func (s *server) sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(s.cfg.Auth.Session.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return r.Header.Get("Authorization") != "" || r.Header.Get("X-Requested-With") != ""
}

func sessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey).(*models.Session)
	return session
}
