package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"remedypedia/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeycloakServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/realms/remedypedia/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.Form.Get("grant_type"))
		assert.Equal(t, "remedy-admin", r.Form.Get("client_id"))
		if r.Form.Get("password") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "access-123",
			RefreshToken: "refresh-123",
			ExpiresIn:    300,
			TokenType:    "Bearer",
		})
	})
	mux.HandleFunc("/realms/remedypedia/protocol/openid-connect/token/introspect", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		active := r.Form.Get("token") == "access-123"
		_ = json.NewEncoder(w).Encode(TokenInfo{Active: active, Sub: "user-1", Username: "editor", Email: "editor@example.com"})
	})
	mux.HandleFunc("/realms/remedypedia/protocol/openid-connect/logout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh-123", r.Form.Get("refresh_token"))
		w.WriteHeader(http.StatusNoContent)
	})
	return httptest.NewServer(mux)
}

func TestKeycloakClient_PasswordGrant(t *testing.T) {
	server := newKeycloakServer(t)
	defer server.Close()

	client := NewKeycloakClient(server.URL+"/", "remedypedia", "remedy-admin", "client-secret")
	require.True(t, client.Configured())

	tokens, err := client.PasswordGrant(context.Background(), "editor", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "access-123", tokens.AccessToken)
	assert.Equal(t, "refresh-123", tokens.RefreshToken)

	_, err = client.PasswordGrant(context.Background(), "editor", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthenticationFailed))
}

func TestKeycloakClient_ValidateToken(t *testing.T) {
	server := newKeycloakServer(t)
	defer server.Close()

	client := NewKeycloakClient(server.URL, "remedypedia", "remedy-admin", "client-secret")

	info, err := client.ValidateToken(context.Background(), "access-123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", info.Sub)
	assert.Equal(t, "editor", info.Username)

	_, err = client.ValidateToken(context.Background(), "revoked")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthenticationFailed))
}

func TestKeycloakClient_Logout(t *testing.T) {
	server := newKeycloakServer(t)
	defer server.Close()

	client := NewKeycloakClient(server.URL, "remedypedia", "remedy-admin", "client-secret")
	assert.NoError(t, client.Logout(context.Background(), "refresh-123"))
}

func TestKeycloakClient_Unreachable(t *testing.T) {
	client := NewKeycloakClient("http://127.0.0.1:1", "remedypedia", "remedy-admin", "client-secret")

	_, err := client.PasswordGrant(context.Background(), "editor", "s3cret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

func TestKeycloakClient_NotConfigured(t *testing.T) {
	assert.False(t, NewKeycloakClient("", "", "", "").Configured())
	var nilClient *KeycloakClient
	assert.False(t, nilClient.Configured())
}
