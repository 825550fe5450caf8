package cancel_appointment_owner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	sessionModels "github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type stubUseCase struct {
	got *cancelAppointment.OwnerRequest
	err error
}

func (s *stubUseCase) CancelByOwner(_ context.Context, req *cancelAppointment.OwnerRequest) error {
	s.got = req
	return s.err
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/appointment/user/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"id": id})
	return r.WithContext(middleware.WithClaims(r.Context(), &sessionModels.Claims{Username: "alice", Role: domain.RoleUser}))
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{}
	w := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(w, request("9"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &cancelAppointment.OwnerRequest{AppointmentID: 9, Username: "alice"}, uc.got)
}

func TestHandle_Denied(t *testing.T) {
	uc := &stubUseCase{err: &domain.EligibilityError{Reason: domain.ReasonNotEditable}}
	w := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(w, request("9"))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, domain.ReasonNotEditable, body.Message)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{cancelAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{cancelAppointment.ErrInvalidState, http.StatusConflict},
		{cancelAppointment.ErrConcurrentUpdate, http.StatusConflict},
		{cancelAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()).Handle(w, request("9"))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
