package update_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	pricingModels "github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var (
	now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	day = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
)

type appointmentRepoStub struct {
	appointments map[int64]*domain.Appointment
	owners       map[int64]string
	taken        int
	lockCalls    int
	updated      *domain.Appointment
}

func (s *appointmentRepoStub) GetByIDAndUsername(_ context.Context, id int64, username string) (*domain.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok || a.IsDeleted || s.owners[id] != username {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *appointmentRepoStub) LockSlot(context.Context, time.Time, types.TimeString, *int64) (int, error) {
	s.lockCalls++
	return s.taken, nil
}

func (s *appointmentRepoStub) GetByVanAndDay(_ context.Context, vanID int64, d time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.IsDeleted || a.VanID == nil || *a.VanID != vanID || !domain.SameDay(a.Day, d) || a.ID == *excludeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *appointmentRepoStub) Update(_ context.Context, a *domain.Appointment) error {
	s.updated = a
	return nil
}

type pricingStub struct{}

func (pricingStub) Quote(_ context.Context, in pricingModels.QuoteInput) (float64, error) {
	return 10000 + float64(in.Stairs)*1000, nil
}

type publisherStub struct{ events []events.Event }

func (p *publisherStub) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type metricsStub struct {
	conflicts []string
	denied    int
}

func (m *metricsStub) RecordConflict(kind string) { m.conflicts = append(m.conflicts, kind) }
func (m *metricsStub) RecordEligibilityDenied() { m.denied++ }

type txStub struct{ commitErr error }

func (tx txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func existing(id int64, d time.Time, schedule string, vanID *int64) *domain.Appointment {
	return &domain.Appointment{
		ID:           id,
		StateID:      domain.StateScheduled,
		VanID:        vanID,
		Day:          d,
		Schedule:     types.MustTimeString(schedule),
		Duration:     types.MustTimeString("01:00"),
		StartAddress: "A",
		EndAddress:   "B",
	}
}

type fixture struct {
	uc        *UseCase
	repo      *appointmentRepoStub
	publisher *publisherStub
	metrics   *metricsStub
}

func newFixture(tx txStub, appointments ...*domain.Appointment) *fixture {
	repo := &appointmentRepoStub{appointments: map[int64]*domain.Appointment{}, owners: map[int64]string{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
		repo.owners[a.ID] = "alice"
	}
	f := &fixture{repo: repo, publisher: &publisherStub{}, metrics: &metricsStub{}}
	f.uc = NewUseCase(repo, pricingStub{}, f.publisher, f.metrics, tx, domain.DefaultRules(), logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func request(id int64, d time.Time, schedule string) *Request {
	return &Request{
		AppointmentID: id,
		Username:      "alice",
		Day:           d,
		Schedule:      types.TimeString(schedule),
		StartAddress:  "A",
		EndAddress:    "C",
		Stairs:        3,
	}
}

func TestExecute_EditWithoutReschedule(t *testing.T) {
	f := newFixture(txStub{}, existing(1, day, "10:00", nil))

	resp, err := f.uc.Execute(context.Background(), request(1, day, "10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Rescheduled)
	assert.Equal(t, 13000.0, resp.Cost)
	assert.Equal(t, "C", f.repo.updated.EndAddress)
	assert.Zero(t, f.repo.lockCalls)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_RescheduleChecksCapacity(t *testing.T) {
	f := newFixture(txStub{}, existing(1, day, "10:00", nil))
	f.repo.taken = 5

	_, err := f.uc.Execute(context.Background(), request(1, day, "11:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.repo.lockCalls)
	assert.Nil(t, f.repo.updated)
	assert.Equal(t, []string{"slot"}, f.metrics.conflicts)
}

func TestExecute_RescheduleSucceeds(t *testing.T) {
	f := newFixture(txStub{}, existing(1, day, "10:00", nil))
	f.repo.taken = 4

	resp, err := f.uc.Execute(context.Background(), request(1, day, "11:00"))

	require.NoError(t, err)
	assert.True(t, resp.Rescheduled)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeAppointmentRescheduled, f.publisher.events[0].Type)
	assert.Equal(t, "11:00", f.publisher.events[0].Schedule)
}

func TestExecute_RescheduleChecksAssignedVan(t *testing.T) {
	f := newFixture(txStub{},
		existing(1, day, "10:00", ptr.Ptr(int64(7))),
		existing(2, day, "14:00", ptr.Ptr(int64(7))),
	)

	_, err := f.uc.Execute(context.Background(), request(1, day, "13:00"))
	assert.ErrorIs(t, err, ErrVanNotAvailable)
	assert.Equal(t, []string{"van"}, f.metrics.conflicts)

	_, err = f.uc.Execute(context.Background(), request(1, day, "11:00"))
	require.NoError(t, err)
}

func TestExecute_Gate(t *testing.T) {
	soon := existing(1, domain.DateOnly(now.Add(47*time.Hour)), types.NewTimeString(now.Add(47*time.Hour)).String(), nil)
	enRoute := existing(2, day, "10:00", nil)
	enRoute.StateID = domain.StateEnRoute
	deleted := existing(3, day, "10:00", nil)
	deleted.IsDeleted = true

	f := newFixture(txStub{}, soon, enRoute, deleted)

	_, err := f.uc.Execute(context.Background(), request(1, day, "10:00"))
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	var eligibilityErr *domain.EligibilityError
	require.ErrorAs(t, err, &eligibilityErr)
	assert.Contains(t, eligibilityErr.Reason, "48 hours")

	_, err = f.uc.Execute(context.Background(), request(2, day, "10:00"))
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	_, err = f.uc.Execute(context.Background(), request(3, day, "10:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	req := request(2, day, "10:00")
	req.Username = "bob"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.Equal(t, 2, f.metrics.denied)
	assert.Nil(t, f.repo.updated)
}

func TestExecute_InvalidNewSlot(t *testing.T) {
	f := newFixture(txStub{}, existing(1, day, "10:00", nil))

	_, err := f.uc.Execute(context.Background(), request(1, day, "10:15"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = f.uc.Execute(context.Background(), request(1, now.AddDate(0, 0, -1), "10:00"))
	assert.ErrorIs(t, err, ErrInvalidDate)

	req := request(1, day, "10:00")
	req.EndAddress = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentModification(t *testing.T) {
	conflict := txStub{commitErr: fmt.Errorf("%w: could not serialize", txmanager.ErrConflict)}

	f := newFixture(conflict, existing(1, day, "10:00", nil))
	_, err := f.uc.Execute(context.Background(), request(1, day, "10:00"))
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	f = newFixture(conflict, existing(1, day, "10:00", nil))
	_, err = f.uc.Execute(context.Background(), request(1, day, "12:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
