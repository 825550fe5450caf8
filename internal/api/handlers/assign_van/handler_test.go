package assign_van

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignVan "github.com/m04kA/SMC-MovingService/internal/usecase/assign_van"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
)

type stubUseCase struct {
	got *assignVan.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *assignVan.Request) (*assignVan.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &assignVan.Response{AppointmentID: req.AppointmentID, VanID: req.VanID, PreviousVanID: ptr.Ptr(int64(2))}, nil
}

func request(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/appointment/"+id, strings.NewReader(body))
	return mux.SetURLVars(r, map[string]string{"id": id})
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{}
	w := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(w, request("7", `{"id_van": 3}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &assignVan.Request{AppointmentID: 7, VanID: 3}, uc.got)

	var body AssignVanResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(3), body.VanID)
	require.NotNil(t, body.PreviousVanID)
	assert.Equal(t, int64(2), *body.PreviousVanID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{assignVan.ErrVanNotAvailable, http.StatusConflict},
		{assignVan.ErrAppointmentNotFound, http.StatusNotFound},
		{assignVan.ErrVanNotFound, http.StatusNotFound},
		{assignVan.ErrInvalidState, http.StatusConflict},
		{assignVan.ErrInvalidInput, http.StatusBadRequest},
		{assignVan.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()).Handle(w, request("7", `{"id_van": 3}`))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	uc := &stubUseCase{}

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, request("x", `{"id_van": 3}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, request("7", `{"id_van": "three"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Nil(t, uc.got)
}
