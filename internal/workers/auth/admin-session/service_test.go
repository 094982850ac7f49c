package adminsession

import (
	"context"
	"fmt"
	"testing"
	"time"

	"remedypedia/internal/common/auth"
	"remedypedia/internal/common/config"
	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Identity Provider
// ==========================

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) PasswordGrant(ctx context.Context, username, password string) (*auth.TokenResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenResponse), args.Error(1)
}

func (m *MockIdentityProvider) ValidateToken(ctx context.Context, token string) (*auth.TokenInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenInfo), args.Error(1)
}

func (m *MockIdentityProvider) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// ==========================
// Test Helpers
// ==========================

func newMiniredisService(t *testing.T, identity IdentityProvider) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	appCfg := &config.Config{}
	appCfg.Auth.Session.TTL = 3600

	svc := NewService(ServiceDependencies{
		Logger:   logger.NewTestLogger(t),
		Redis:    client,
		Identity: identity,
	}, LoadConfig(appCfg))
	return svc, mr
}

func identityAccepting() *MockIdentityProvider {
	identity := new(MockIdentityProvider)
	identity.On("PasswordGrant", mock.Anything, "editor", "s3cret").
		Return(&auth.TokenResponse{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil)
	identity.On("ValidateToken", mock.Anything, "access-1").
		Return(&auth.TokenInfo{Active: true, Sub: "user-1", Username: "editor", Email: "editor@example.com"}, nil)
	return identity
}

// ==========================
// Login Tests
// ==========================

func TestService_Login_StoresSessionWithTTL(t *testing.T) {
	svc, mr := newMiniredisService(t, identityAccepting())

	out, err := svc.Login(context.Background(), &LoginInput{Username: " editor ", Password: "s3cret", IPAddress: "10.0.0.1"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "user-1", out.Session.UserID)
	assert.Empty(t, out.Session.RefreshToken)

	key := keyPrefix + out.Token
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	stored, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, stored, `"refreshToken":"refresh-1"`)
}

func TestService_Login_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *LoginInput
		identity func() IdentityProvider
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing password",
			input:    &LoginInput{Username: "editor"},
			identity: func() IdentityProvider { return new(MockIdentityProvider) },
			wantCode: errors.ErrCodeInputValidationFailed,
		},
		{
			name:     "identity provider not configured",
			input:    &LoginInput{Username: "editor", Password: "s3cret"},
			identity: func() IdentityProvider { return nil },
			wantCode: errors.ErrCodeConfigurationMissing,
		},
		{
			name:  "bad credentials",
			input: &LoginInput{Username: "editor", Password: "wrong"},
			identity: func() IdentityProvider {
				identity := new(MockIdentityProvider)
				identity.On("PasswordGrant", mock.Anything, "editor", "wrong").
					Return(nil, errors.NewAuthenticationError("invalid username or password"))
				return identity
			},
			wantCode: errors.ErrCodeAuthenticationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newMiniredisService(t, tt.identity())
			_, err := svc.Login(context.Background(), tt.input)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

// ==========================
// Session Lookup Tests
// ==========================

func TestService_GetSession(t *testing.T) {
	svc, mr := newMiniredisService(t, identityAccepting())

	out, err := svc.Login(context.Background(), &LoginInput{Username: "editor", Password: "s3cret"})
	require.NoError(t, err)

	session, err := svc.GetSession(context.Background(), out.Token)
	require.NoError(t, err)
	assert.Equal(t, "editor", session.Username)

	_, err = svc.GetSession(context.Background(), "not-a-token")
	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionNotFound))

	mr.FastForward(2 * time.Hour)
	_, err = svc.GetSession(context.Background(), out.Token)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionNotFound))
}

func TestService_GetSession_ExpiredByClock(t *testing.T) {
	svc, mr := newMiniredisService(t, identityAccepting())

	out, err := svc.Login(context.Background(), &LoginInput{Username: "editor", Password: "s3cret"})
	require.NoError(t, err)
	require.True(t, mr.Exists(keyPrefix+out.Token))

	later := time.Now().UTC().Add(2 * time.Hour)
	svc.now = func() time.Time { return later }

	_, err = svc.GetSession(context.Background(), out.Token)

	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionNotFound))
	assert.False(t, mr.Exists(keyPrefix+out.Token))
}

func TestService_GetSession_CorruptPayload(t *testing.T) {
	svc, mr := newMiniredisService(t, nil)
	token := "3f1e7a52-9c1d-4d0b-8f2a-6a9b4c3d2e10"
	require.NoError(t, mr.Set(keyPrefix+token, "{not json"))

	_, err := svc.GetSession(context.Background(), token)

	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionNotFound))
	assert.False(t, mr.Exists(keyPrefix+token))
}

func TestService_GetSession_StoreUnavailable(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	token := "3f1e7a52-9c1d-4d0b-8f2a-6a9b4c3d2e10"
	redisMock.ExpectGet(keyPrefix + token).SetErr(fmt.Errorf("connection refused"))

	svc := NewService(ServiceDependencies{Logger: logger.NewTestLogger(t), Redis: client}, nil)

	_, err := svc.GetSession(context.Background(), token)

	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

// ==========================
// Logout Tests
// ==========================

func TestService_Logout(t *testing.T) {
	identity := identityAccepting()
	identity.On("Logout", mock.Anything, "refresh-1").Return(nil).Once()
	svc, mr := newMiniredisService(t, identity)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "editor", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), out.Token))
	assert.False(t, mr.Exists(keyPrefix+out.Token))
	identity.AssertExpectations(t)

	assert.NoError(t, svc.Logout(context.Background(), out.Token))
}

func TestService_Logout_RevocationFailureIsIgnored(t *testing.T) {
	identity := identityAccepting()
	identity.On("Logout", mock.Anything, "refresh-1").Return(fmt.Errorf("keycloak down")).Once()
	svc, mr := newMiniredisService(t, identity)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "editor", Password: "s3cret"})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), out.Token))
	assert.False(t, mr.Exists(keyPrefix+out.Token))
}
