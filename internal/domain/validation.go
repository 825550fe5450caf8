package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidAppointment возвращается, когда параметры заявки некорректны
var ErrInvalidAppointment = errors.New("invalid appointment")

// ValidateDetails проверяет параметры работы (адреса, этажи, расстояние, длительность).
// День и время начала проверяются отдельно, так как зависят от текущего времени и правил.
func ValidateDetails(a *Appointment) error {
	if strings.TrimSpace(a.StartAddress) == "" || strings.TrimSpace(a.EndAddress) == "" {
		return fmt.Errorf("%w: start and end addresses are required", ErrInvalidAppointment)
	}
	if utf8.RuneCountInString(a.StartAddress) > MaxAddressLength || utf8.RuneCountInString(a.EndAddress) > MaxAddressLength {
		return fmt.Errorf("%w: address is longer than %d characters", ErrInvalidAppointment, MaxAddressLength)
	}
	if a.Stairs < 0 || a.Stairs > MaxStairs {
		return fmt.Errorf("%w: stairs must be between 0 and %d", ErrInvalidAppointment, MaxStairs)
	}
	if a.Distance < 0 || a.Distance > MaxDistanceKm {
		return fmt.Errorf("%w: distance must be between 0 and %d km", ErrInvalidAppointment, MaxDistanceKm)
	}
	if utf8.RuneCountInString(a.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidAppointment, MaxDescriptionLength)
	}
	if err := a.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidAppointment, err)
	}
	if err := a.Duration.Validate(); err != nil {
		return fmt.Errorf("%w: duration: %v", ErrInvalidAppointment, err)
	}
	if a.Duration.Minutes() <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidAppointment)
	}
	return nil
}
