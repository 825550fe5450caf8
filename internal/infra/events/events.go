package events

import (
	"context"
	"time"
)

// Типы событий жизненного цикла заявки
const (
	TypeAppointmentCreated     = "appointment.created"
	TypeAppointmentVanAssigned = "appointment.van_assigned"
	TypeAppointmentRescheduled = "appointment.rescheduled"
	TypeAppointmentCancelled   = "appointment.cancelled"
)

// Инициатор отмены
const (
	ByOwner = "owner"
	ByAdmin = "admin"
)

// Event событие изменения заявки
type Event struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	AppointmentID int64     `json:"appointment_id"`
	Username      string    `json:"username,omitempty"`
	Day           string    `json:"day,omitempty"`
	Schedule      string    `json:"schedule,omitempty"`
	VanID         *int64    `json:"van_id,omitempty"`
	PreviousVanID *int64    `json:"previous_van_id,omitempty"`
	By            string    `json:"by,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NoopPublisher используется, когда Kafka выключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}
