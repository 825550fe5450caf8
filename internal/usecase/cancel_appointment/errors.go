package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена, чужая или уже отменена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrInvalidState возвращается, когда заявку в текущем состоянии отменить нельзя
	ErrInvalidState = errors.New("cancel_appointment: appointment cannot be cancelled in its current state")

	// ErrConcurrentUpdate возвращается, когда заявку одновременно изменил другой запрос
	ErrConcurrentUpdate = errors.New("cancel_appointment: appointment was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
