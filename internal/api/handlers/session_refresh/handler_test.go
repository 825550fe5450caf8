package session_refresh

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type stubService struct {
	gotToken string
	access   *models.AccessToken
	err      error
}

func (s *stubService) Refresh(_ context.Context, token string) (*models.AccessToken, error) {
	s.gotToken = token
	return s.access, s.err
}

func newRequest(refresh string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/session/refresh-token", nil)
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: refresh})
	}
	return r
}

func TestHandle_IssuesNewAccessCookie(t *testing.T) {
	svc := &stubService{access: &models.AccessToken{Token: "new-access", ExpiresAt: time.Now().Add(time.Hour)}}
	h := NewHandler(svc, false, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("ref"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ref", svc.gotToken)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Equal(t, "new-access", cookies[0].Value)
}

func TestHandle_ExpiredSessionClearsCookies(t *testing.T) {
	tests := map[string]struct {
		token string
		err   error
	}{
		"missing cookie": {},
		"revoked token":  {token: "ref", err: sessions.ErrInvalidToken},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, false, logger.NewNop())
			w := httptest.NewRecorder()

			h.Handle(w, newRequest(tt.token))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 2)
			for _, c := range cookies {
				assert.Equal(t, -1, c.MaxAge)
			}
		})
	}
}

func TestHandle_StoreFailure(t *testing.T) {
	h := NewHandler(&stubService{err: errors.New("redis down")}, false, logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, newRequest("ref"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
