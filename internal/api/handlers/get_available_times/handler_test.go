package get_available_times

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableTimes "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_times"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) Execute(_ context.Context, req *getAvailableTimes.Request) (*getAvailableTimes.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &getAvailableTimes.Response{Day: req.Day, Times: []types.TimeString{"09:00", "11:00"}}, nil
}

func request(day string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/appointment/available-times/"+day, nil)
	return mux.SetURLVars(r, map[string]string{"day": day})
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubUseCase{}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, request("2025-06-01"))

	require.Equal(t, http.StatusOK, w.Code)
	var body AvailableTimesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "2025-06-01", body.Day)
	assert.Equal(t, []string{"09:00", "11:00"}, body.Times)
}

func TestHandle_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(stubUseCase{}, logger.NewNop()).Handle(w, request("tomorrow"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	NewHandler(stubUseCase{err: getAvailableTimes.ErrInternal}, logger.NewNop()).Handle(w, request("2025-06-01"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	NewHandler(stubUseCase{err: errors.New("unexpected")}, logger.NewNop()).Handle(w, request("2025-06-01"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
