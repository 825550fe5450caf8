package check_eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

type repoStub struct {
	appointment *domain.Appointment
	owner       string
	err         error
}

func (s *repoStub) GetByIDAndUsername(_ context.Context, id int64, username string) (*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.appointment == nil || s.appointment.ID != id || username != s.owner || s.appointment.IsDeleted {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return s.appointment, nil
}

type metricsStub struct{ denied int }

func (m *metricsStub) RecordEligibilityDenied() { m.denied++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func startingIn(d time.Duration) *domain.Appointment {
	start := now.Add(d)
	return &domain.Appointment{
		ID:       11,
		StateID:  domain.StateScheduled,
		Day:      domain.DateOnly(start),
		Schedule: types.NewTimeString(start),
		Duration: types.MustTimeString("01:00"),
	}
}

func newUseCase(repo *repoStub, m *metricsStub) *UseCase {
	uc := NewUseCase(repo, m, domain.DefaultRules(), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_LeadTime(t *testing.T) {
	m := &metricsStub{}

	resp, err := newUseCase(&repoStub{appointment: startingIn(49 * time.Hour), owner: "alice"}, m).
		Execute(context.Background(), &Request{AppointmentID: 11, Username: "alice"})
	require.NoError(t, err)
	assert.True(t, resp.Eligible)
	assert.InDelta(t, 49.0, resp.HoursUntil, 0.001)

	resp, err = newUseCase(&repoStub{appointment: startingIn(47 * time.Hour), owner: "alice"}, m).
		Execute(context.Background(), &Request{AppointmentID: 11, Username: "alice"})
	require.NoError(t, err)
	assert.False(t, resp.Eligible)
	assert.Contains(t, resp.Reason, "48 hours")
	assert.Equal(t, 1, m.denied)
}

func TestExecute_NotFound(t *testing.T) {
	deleted := startingIn(72 * time.Hour)
	deleted.IsDeleted = true

	tests := []struct {
		name     string
		repo     *repoStub
		username string
	}{
		{name: "missing", repo: &repoStub{}, username: "alice"},
		{name: "other owner", repo: &repoStub{appointment: startingIn(72 * time.Hour), owner: "alice"}, username: "bob"},
		{name: "soft deleted", repo: &repoStub{appointment: deleted, owner: "alice"}, username: "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newUseCase(tt.repo, &metricsStub{}).
				Execute(context.Background(), &Request{AppointmentID: 11, Username: tt.username})
			require.NoError(t, err)
			assert.False(t, resp.Eligible)
			assert.Equal(t, domain.ReasonNotFound, resp.Reason)
		})
	}
}

func TestExecute_StorageFailure(t *testing.T) {
	_, err := newUseCase(&repoStub{err: errors.New("db down")}, &metricsStub{}).
		Execute(context.Background(), &Request{AppointmentID: 11, Username: "alice"})

	assert.ErrorIs(t, err, ErrInternal)
}
