package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StatePending, StateScheduled, true},
		{StatePending, StateCancelled, true},
		{StateScheduled, StateEnRoute, true},
		{StateScheduled, StateCancelled, true},
		{StateEnRoute, StateCompleted, true},
		{StateEnRoute, StateCancelled, false},
		{StateCompleted, StateCancelled, false},
		{StateCancelled, StateScheduled, false},
		{StateScheduled, StatePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointment_Cancel(t *testing.T) {
	a := &Appointment{StateID: StateScheduled}
	require.NoError(t, a.Cancel())
	assert.Equal(t, StateCancelled, a.StateID)
	assert.True(t, a.IsDeleted)

	done := &Appointment{StateID: StateCompleted}
	assert.ErrorIs(t, done.Cancel(), ErrInvalidTransition)
	assert.False(t, done.IsDeleted)
}

func TestInterval_Overlaps(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// Van #7: 10:00 + 01:00 + 1h buffer = [10:00, 12:00)
	existing := (&Appointment{
		Day:      day,
		Schedule: types.MustTimeString("10:00"),
		Duration: types.MustTimeString("01:00"),
	}).Window(time.UTC, DefaultVanBuffer)

	assert.Equal(t, at(10, 0), existing.Start)
	assert.Equal(t, at(12, 0), existing.End)

	assert.True(t, existing.Overlaps(RequestedWindow(at(11, 30), 0, DefaultVanBuffer)))
	assert.False(t, existing.Overlaps(RequestedWindow(at(12, 30), 0, DefaultVanBuffer)))
	assert.False(t, existing.Overlaps(RequestedWindow(at(12, 0), 0, DefaultVanBuffer)))
	assert.True(t, existing.Overlaps(RequestedWindow(at(9, 30), 0, DefaultVanBuffer)))
	assert.False(t, existing.Overlaps(RequestedWindow(at(9, 0), 0, DefaultVanBuffer)))
}

func TestEvaluateEligibility(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	appointmentAt := func(d time.Duration) *Appointment {
		start := now.Add(d)
		return &Appointment{
			StateID:  StateScheduled,
			Day:      DateOnly(start),
			Schedule: types.NewTimeString(start),
			Duration: types.MustTimeString("01:00"),
		}
	}

	tests := []struct {
		name     string
		a        *Appointment
		eligible bool
		reason   string
	}{
		{name: "49 hours ahead", a: appointmentAt(49 * time.Hour), eligible: true},
		{name: "48h01m ahead", a: appointmentAt(48*time.Hour + time.Minute), eligible: true},
		{name: "exactly 48 hours", a: appointmentAt(48 * time.Hour), reason: LeadTimeReason(DefaultEditLeadTime)},
		{name: "47 hours ahead", a: appointmentAt(47 * time.Hour), reason: LeadTimeReason(DefaultEditLeadTime)},
		{name: "missing", a: nil, reason: ReasonNotFound},
		{name: "soft deleted", a: func() *Appointment {
			a := appointmentAt(72 * time.Hour)
			a.IsDeleted = true
			return a
		}(), reason: ReasonNotFound},
		{name: "en route", a: func() *Appointment {
			a := appointmentAt(72 * time.Hour)
			a.StateID = StateEnRoute
			return a
		}(), reason: ReasonNotEditable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateEligibility(tt.a, now, time.UTC, DefaultEditLeadTime)
			assert.Equal(t, tt.eligible, got.Eligible)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestLeadTimeReason(t *testing.T) {
	assert.Contains(t, LeadTimeReason(48*time.Hour), "48 hours")
}

func TestValidateDetails(t *testing.T) {
	valid := func() *Appointment {
		return &Appointment{
			StartAddress: "Av. Colón 100",
			EndAddress:   "San Martín 250",
			Schedule:     types.MustTimeString("09:00"),
			Duration:     types.MustTimeString("01:30"),
		}
	}

	require.NoError(t, ValidateDetails(valid()))

	tests := map[string]func(a *Appointment){
		"empty address":     func(a *Appointment) { a.EndAddress = " " },
		"negative stairs":   func(a *Appointment) { a.Stairs = -1 },
		"negative distance": func(a *Appointment) { a.Distance = -0.5 },
		"zero duration":     func(a *Appointment) { a.Duration = "00:00" },
		"bad schedule":      func(a *Appointment) { a.Schedule = "9am" },
		"long description": func(a *Appointment) {
			a.Description = string(make([]rune, MaxDescriptionLength+1))
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			a := valid()
			mutate(a)
			assert.ErrorIs(t, ValidateDetails(a), ErrInvalidAppointment)
		})
	}
}

func TestEligibilityError(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &EligibilityError{Reason: ReasonNotEditable})

	assert.ErrorIs(t, err, ErrNotEligible)

	var target *EligibilityError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, ReasonNotEditable, target.Reason)
}
