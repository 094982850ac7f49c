// internal/transport/rest/auth.go
package rest

import (
	"net"
	"net/http"
	"time"

	"remedypedia/internal/common/errors"
	adminsession "remedypedia/internal/workers/auth/admin-session"
)

func (s *server) sessionsAvailable(w http.ResponseWriter, r *http.Request) bool {
	if s.sessions == nil {
		s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Session store"))
		return false
	}
	return true
}

// POST /auth/login
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if !s.sessionsAvailable(w, r) {
		return
	}

	var input adminsession.LoginInput
	if err := s.decodeBody(r, "auth-login", &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	input.IPAddress = clientIP(r)

	out, err := s.sessions.Login(r.Context(), &input)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}

	http.SetCookie(w, s.sessionCookie(out.Token, out.ExpiresAt))
	writeJSON(w, http.StatusOK, out)
}

// GET /auth/session
func (s *server) currentSession(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil {
		s.errors.WriteError(w, r, errors.NewSessionNotFoundError())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session.Public()})
}

// POST /auth/logout
func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	if !s.sessionsAvailable(w, r) {
		return
	}
	if token := s.sessionToken(r); token != "" {
		if err := s.sessions.Logout(r.Context(), token); err != nil {
			s.errors.WriteError(w, r, err)
			return
		}
	}

	http.SetCookie(w, s.sessionCookie("", time.Unix(0, 0)))
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *server) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     s.cfg.Auth.Session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.Auth.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
