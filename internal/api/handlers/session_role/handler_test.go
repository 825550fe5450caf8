package session_role

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type stubService struct{}

func (stubService) Role(_ context.Context, token string) (*models.RoleResponse, error) {
	if token != "good" {
		return nil, sessions.ErrInvalidToken
	}
	return &models.RoleResponse{Username: "admin", Role: "admin"}, nil
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{}, logger.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/session/role", nil)
	r.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "good"})
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body models.RoleResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "admin", body.Role)
	assert.Equal(t, "admin", body.Username)
}

func TestHandle_Unauthenticated(t *testing.T) {
	h := NewHandler(stubService{}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/session/role", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/session/role", nil)
	r.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	h.Handle(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
