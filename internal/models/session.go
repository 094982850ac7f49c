package models

import "time"

// Session represents a logged-in admin session.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Public strips fields that must not leave the server.
func (s *Session) Public() *Session {
	out := *s
	out.RefreshToken = ""
	return &out
}
