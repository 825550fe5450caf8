package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Appointment заявка на переезд (перевозку) в конкретный день и время
type Appointment struct {
	ID       int64
	UserID   string // UUID владельца, не меняется после создания
	StateID  State
	VanID    *int64 // nil, пока фургон не назначен
	Day      time.Time
	Schedule types.TimeString // время начала
	Duration types.TimeString // длительность работы (HH:MM)

	StartAddress string
	EndAddress   string
	Stairs       int
	Distance     float64 // км
	Staff        bool    // нужны дополнительные грузчики
	Elevator     bool
	Description  string

	Cost      float64
	IsDeleted bool
}

// AppointmentDetails заявка с денормализованными именами для списков
type AppointmentDetails struct {
	Appointment
	Username   string
	FirstName  string
	LastName   string
	StateName  string
	DriverName *string
}

// Start возвращает момент начала заявки в указанной временной зоне
func (a *Appointment) Start(loc *time.Location) time.Time {
	return a.Schedule.On(a.Day, loc)
}

// Window возвращает интервал, который заявка занимает у фургона:
// [schedule, schedule + duration + buffer)
func (a *Appointment) Window(loc *time.Location, buffer time.Duration) Interval {
	start := a.Start(loc)
	return Interval{Start: start, End: start.Add(a.Duration.Duration() + buffer)}
}

// HasVan возвращает true, если фургон назначен
func (a *Appointment) HasVan() bool {
	return a.VanID != nil
}

// IsSameSlot возвращает true, если заявка стоит на тот же день и время
func (a *Appointment) IsSameSlot(day time.Time, schedule types.TimeString) bool {
	return SameDay(a.Day, day) && a.Schedule == schedule
}

// TransitionTo переводит заявку в новое состояние, если переход разрешён
func (a *Appointment) TransitionTo(next State) error {
	if !CanTransition(a.StateID, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.StateID, next)
	}
	a.StateID = next
	return nil
}

// Cancel переводит заявку в состояние cancelled и помечает удалённой
func (a *Appointment) Cancel() error {
	if err := a.TransitionTo(StateCancelled); err != nil {
		return err
	}
	a.IsDeleted = true
	return nil
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly отбрасывает время, оставляя полночь в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
