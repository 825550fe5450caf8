package get_appointments_by_day

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type stubService struct {
	gotDay time.Time
	resp   *models.AppointmentListResponse
}

func (s *stubService) GetByDay(_ context.Context, day time.Time) (*models.AppointmentListResponse, error) {
	s.gotDay = day
	return s.resp, nil
}

func TestHandle_EmptyDay(t *testing.T) {
	svc := &stubService{resp: &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}}
	h := NewHandler(svc, logger.NewNop())

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/appointment/day/2025-06-01", nil), map[string]string{"day": "2025-06-01"})
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), svc.gotDay)

	var body models.AppointmentListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Empty(t, body.Appointments)
	assert.Equal(t, 0, body.Total)
}

func TestHandle_InvalidDay(t *testing.T) {
	h := NewHandler(&stubService{}, logger.NewNop())

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/appointment/day/01-06-2025", nil), map[string]string{"day": "01-06-2025"})
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
