package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remedypedia/internal/common/config"
	"remedypedia/internal/common/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==========================
// retryWithBackoff Tests
// ==========================

func TestRetryWithBackoff_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "test connection")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	attempts := 0
	cause := errors.New("connection refused")
	err := retryWithBackoff(func() error {
		attempts++
		return cause
	}, 3, time.Millisecond, zap.NewNop(), "PostgreSQL connection")

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "PostgreSQL connection failed after 3 attempts")
}

// ==========================
// Probe Tests
// ==========================

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyHandler_NoStoresConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	readyHandler(&dependencies{})(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "disabled", body.Checks["postgres"])
	assert.Equal(t, "disabled", body.Checks["redis"])
}

func TestReadyHandler_StoresHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rc.Close()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	deps := &dependencies{pg: &database.PostgresClient{DB: db}, redis: rc}
	rec := httptest.NewRecorder()
	readyHandler(deps)(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"ok"`)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadyHandler_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rc.Close()
	mr.Close()

	rec := httptest.NewRecorder()
	readyHandler(&dependencies{redis: rc})(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), "redis ping failed")
}
