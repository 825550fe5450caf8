package assign_van

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	vanRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/van"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type appointmentRepoStub struct {
	appointments map[int64]*domain.Appointment
	getErr       error
	updatedVan   map[int64]int64
}

func (s *appointmentRepoStub) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	a, ok := s.appointments[id]
	if !ok || a.IsDeleted {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *appointmentRepoStub) GetByVanAndDay(_ context.Context, vanID int64, d time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.IsDeleted || a.VanID == nil || *a.VanID != vanID || !domain.SameDay(a.Day, d) {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *appointmentRepoStub) UpdateVan(_ context.Context, id int64, vanID int64) error {
	s.updatedVan[id] = vanID
	return nil
}

type vanRepoStub map[int64]*domain.Van

func (s vanRepoStub) GetByID(_ context.Context, id int64) (*domain.Van, error) {
	v, ok := s[id]
	if !ok {
		return nil, vanRepo.ErrVanNotFound
	}
	return v, nil
}

type publisherStub struct{ events []events.Event }

func (p *publisherStub) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type metricsStub struct{ conflicts []string }

func (m *metricsStub) RecordConflict(kind string) { m.conflicts = append(m.conflicts, kind) }

type txStub struct{ commitErr error }

func (tx txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

func appointment(id int64, schedule string, vanID *int64) *domain.Appointment {
	return &domain.Appointment{
		ID:       id,
		StateID:  domain.StateScheduled,
		VanID:    vanID,
		Day:      day,
		Schedule: types.MustTimeString(schedule),
		Duration: types.MustTimeString("01:00"),
	}
}

type fixture struct {
	uc        *UseCase
	repo      *appointmentRepoStub
	publisher *publisherStub
	metrics   *metricsStub
}

func newFixture(tx txStub, appointments ...*domain.Appointment) *fixture {
	repo := &appointmentRepoStub{appointments: map[int64]*domain.Appointment{}, updatedVan: map[int64]int64{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	vans := vanRepoStub{
		3: {ID: 3, Available: true},
		7: {ID: 7, Available: true},
		9: {ID: 9, Available: false},
	}
	f := &fixture{repo: repo, publisher: &publisherStub{}, metrics: &metricsStub{}}
	f.uc = NewUseCase(repo, vans, f.publisher, f.metrics, tx, domain.DefaultRules(), logger.NewNop())
	return f
}

func TestExecute_AssignsFreeVan(t *testing.T) {
	f := newFixture(txStub{},
		appointment(1, "10:00", ptr.Ptr(int64(7))),
		appointment(2, "12:00", nil),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 2, VanID: 7})

	require.NoError(t, err)
	assert.Nil(t, resp.PreviousVanID)
	assert.Equal(t, int64(7), f.repo.updatedVan[2])
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeAppointmentVanAssigned, f.publisher.events[0].Type)
}

func TestExecute_OverlapIsRejected(t *testing.T) {
	f := newFixture(txStub{},
		appointment(1, "10:00", ptr.Ptr(int64(7))),
		appointment(2, "11:00", nil),
	)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 2, VanID: 7})

	assert.ErrorIs(t, err, ErrVanNotAvailable)
	assert.Empty(t, f.repo.updatedVan)
	assert.Equal(t, []string{"van"}, f.metrics.conflicts)
}

func TestExecute_ReassignReturnsPreviousVan(t *testing.T) {
	f := newFixture(txStub{}, appointment(1, "10:00", ptr.Ptr(int64(7))))

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, VanID: 3})

	require.NoError(t, err)
	require.NotNil(t, resp.PreviousVanID)
	assert.Equal(t, int64(7), *resp.PreviousVanID)
}

func TestExecute_SameVanDoesNotConflictWithItself(t *testing.T) {
	f := newFixture(txStub{}, appointment(1, "10:00", ptr.Ptr(int64(7))))

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, VanID: 7})

	require.NoError(t, err)
}

func TestExecute_DeletedAppointmentsDoNotBlock(t *testing.T) {
	cancelled := appointment(1, "10:00", ptr.Ptr(int64(7)))
	cancelled.IsDeleted = true
	f := newFixture(txStub{}, cancelled, appointment(2, "10:30", nil))

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 2, VanID: 7})

	require.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	completed := appointment(4, "10:00", nil)
	completed.StateID = domain.StateCompleted

	tests := []struct {
		name string
		f    *fixture
		req  *Request
		want error
	}{
		{name: "missing appointment", f: newFixture(txStub{}), req: &Request{AppointmentID: 1, VanID: 3}, want: ErrAppointmentNotFound},
		{name: "missing van", f: newFixture(txStub{}, appointment(1, "10:00", nil)), req: &Request{AppointmentID: 1, VanID: 42}, want: ErrVanNotFound},
		{name: "van switched off", f: newFixture(txStub{}, appointment(1, "10:00", nil)), req: &Request{AppointmentID: 1, VanID: 9}, want: ErrVanNotAvailable},
		{name: "completed", f: newFixture(txStub{}, completed), req: &Request{AppointmentID: 4, VanID: 3}, want: ErrInvalidState},
		{name: "bad input", f: newFixture(txStub{}), req: &Request{AppointmentID: 0, VanID: 3}, want: ErrInvalidInput},
		{
			name: "serialization conflict",
			f:    newFixture(txStub{commitErr: fmt.Errorf("%w: deadlock", txmanager.ErrConflict)}, appointment(1, "10:00", nil)),
			req:  &Request{AppointmentID: 1, VanID: 3},
			want: ErrVanNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, tt.f.publisher.events)
		})
	}
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(txStub{})
	f.repo.getErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, VanID: 3})

	assert.ErrorIs(t, err, ErrInternal)
}
