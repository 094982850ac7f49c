// Package adminsession manages admin logins backed by Keycloak and redis.
package adminsession

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	config   *Config
	logger   logger.Logger
	redis    redis.Cmdable
	identity IdentityProvider
	now      func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = LoadConfig(nil)
	}
	return &Service{
		config:   config,
		logger:   deps.Logger.With(map[string]interface{}{"component": "admin-session"}),
		redis:    deps.Redis,
		identity: deps.Identity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates against the identity provider and opens a session.
func (s *Service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, errors.NewInputValidationError("username and password are required", "")
	}
	if s.identity == nil {
		return nil, errors.NewConfigurationError("Authentication is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	tokens, err := s.identity.PasswordGrant(ctx, strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		s.logger.Warn("admin login rejected", map[string]interface{}{
			"username": input.Username,
			"error":    err,
		})
		return nil, err
	}

	info, err := s.identity.ValidateToken(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:           uuid.NewString(),
		UserID:       info.Sub,
		Username:     info.Username,
		Email:        info.Email,
		RefreshToken: tokens.RefreshToken,
		IPAddress:    input.IPAddress,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.config.TTL),
		LastActivity: now,
	}
	if session.Username == "" {
		session.Username = strings.TrimSpace(input.Username)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("encode session: %w", err))
	}
	if err := s.redis.Set(ctx, keyPrefix+session.ID, payload, s.config.TTL).Err(); err != nil {
		return nil, s.storeError("store session", err)
	}

	s.logger.Info("admin session opened", map[string]interface{}{
		"sessionId": session.ID,
		"userId":    session.UserID,
	})

	return &LoginOutput{
		Token:     session.ID,
		ExpiresAt: session.ExpiresAt,
		Session:   session.Public(),
	}, nil
}

// GetSession returns the live session for token or a SESSION_NOT_FOUND error.
func (s *Service) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, errors.NewSessionNotFoundError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	raw, err := s.redis.Get(ctx, keyPrefix+token).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewSessionNotFoundError()
	}
	if err != nil {
		return nil, s.storeError("load session", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Warn("discarding unreadable session", map[string]interface{}{
			"sessionId": token,
			"error":     err,
		})
		s.redis.Del(ctx, keyPrefix+token)
		return nil, errors.NewSessionNotFoundError()
	}
	if session.IsExpired(s.now()) {
		s.redis.Del(ctx, keyPrefix+token)
		return nil, errors.NewSessionNotFoundError()
	}
	return &session, nil
}

// Logout removes the session and revokes its refresh token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.GetSession(ctx, token)
	if errors.IsCode(err, errors.ErrCodeSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.redis.Del(ctx, keyPrefix+session.ID).Err(); err != nil {
		return s.storeError("delete session", err)
	}

	if s.identity != nil && session.RefreshToken != "" {
		if err := s.identity.Logout(ctx, session.RefreshToken); err != nil {
			s.logger.Warn("refresh token revocation failed", map[string]interface{}{
				"sessionId": session.ID,
				"error":     err,
			})
		}
	}

	s.logger.Info("admin session closed", map[string]interface{}{
		"sessionId": session.ID,
		"userId":    session.UserID,
	})
	return nil
}

func (s *Service) storeError(operation string, err error) error {
	s.logger.Error("session store failure", map[string]interface{}{
		"operation": operation,
		"error":     err,
	})
	stdErr := errors.NewServiceUnavailableError("Session store")
	stdErr.Details = fmt.Sprintf("%s: %v", operation, err)
	return stdErr
}
