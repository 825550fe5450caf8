package cancel_appointment_admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) CancelByAdmin(_ context.Context, req *cancelAppointment.AdminRequest) (*cancelAppointment.AdminResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &cancelAppointment.AdminResponse{
		AppointmentID: req.AppointmentID,
		Contact: domain.UserContact{
			UserID:    "u-1",
			FirstName: "Alice",
			LastName:  "Smith",
			Email:     "alice@example.com",
			Phone:     5493511234567,
		},
	}, nil
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/appointment/admin/"+id, nil)
	return mux.SetURLVars(r, map[string]string{"id": id})
}

func TestHandle_ReturnsOwnerContact(t *testing.T) {
	w := httptest.NewRecorder()

	NewHandler(stubUseCase{}, logger.NewNop()).Handle(w, request("4"))

	require.Equal(t, http.StatusOK, w.Code)
	var body CancelResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(4), body.AppointmentID)
	assert.Equal(t, "alice@example.com", body.Contact.Email)
	assert.Equal(t, int64(5493511234567), body.Contact.Phone)
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
			NewHandler(stubUseCase{err: tt.err}, logger.NewNop()).Handle(w, request("4"))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	NewHandler(stubUseCase{}, logger.NewNop()).Handle(w, request("0"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
