package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

func ok(context.Context) error { return nil }

func TestLive(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(nil, logger.NewNop()).Live(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady(t *testing.T) {
	h := NewHandler(map[string]CheckFunc{"database": ok, "tokens": ok}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, map[string]string{"database": "ok", "tokens": "ok"}, body.Checks)
}

func TestReady_DependencyDown(t *testing.T) {
	h := NewHandler(map[string]CheckFunc{
		"database": ok,
		"tokens":   func(context.Context) error { return errors.New("connection refused") },
	}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, "fail", body.Checks["tokens"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}
