package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "headache", body["query"])

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(0)
	resp, err := client.PostJSON(context.Background(), server.URL, map[string]string{"Authorization": "Bearer key-1"}, map[string]string{"query": "headache"})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_PostJSONNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second).PostJSON(context.Background(), server.URL, nil, struct{}{})
	require.NoError(t, err)
	assert.False(t, resp.OK())
}

func TestClient_PostJSONUnmarshalable(t *testing.T) {
	_, err := NewClient(0).PostJSON(context.Background(), "http://127.0.0.1:1", nil, make(chan int))
	assert.Error(t, err)
}

func TestClient_PostJSONUnreachable(t *testing.T) {
	_, err := NewClient(time.Second).PostJSON(context.Background(), "http://127.0.0.1:1", nil, struct{}{})
	assert.Error(t, err)
}
