package adminsession

import (
	"context"
	"time"

	"remedypedia/internal/common/auth"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/models"

	"github.com/redis/go-redis/v9"
)

type LoginInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

type LoginOutput struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Session   *models.Session `json:"session"`
}

// IdentityProvider is the subset of *auth.KeycloakClient used for admin logins.
type IdentityProvider interface {
	PasswordGrant(ctx context.Context, username, password string) (*auth.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.TokenInfo, error)
	Logout(ctx context.Context, refreshToken string) error
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Redis    redis.Cmdable
	Identity IdentityProvider
}
