package assign_van

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена или удалена
	ErrAppointmentNotFound = errors.New("assign_van: appointment not found")

	// ErrVanNotFound возвращается, когда фургон не найден
	ErrVanNotFound = errors.New("assign_van: van not found")

	// ErrVanNotAvailable возвращается, когда фургон выключен или занят в это время
	ErrVanNotAvailable = errors.New("assign_van: van is not available")

	// ErrInvalidState возвращается, когда заявка уже завершена
	ErrInvalidState = errors.New("assign_van: appointment is in a final state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_van: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_van: internal error")
)
