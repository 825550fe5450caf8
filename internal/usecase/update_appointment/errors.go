package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена, чужая или удалена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrInvalidDate возвращается, когда новый день уже прошёл или время уже наступило
	ErrInvalidDate = errors.New("update_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда новое время не входит в дневные слоты
	ErrInvalidTimeSlot = errors.New("update_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда новый слот заполнен
	ErrSlotNotAvailable = errors.New("update_appointment: slot is not available")

	// ErrVanNotAvailable возвращается, когда назначенный фургон занят в новое время
	ErrVanNotAvailable = errors.New("update_appointment: assigned van is not available at the new time")

	// ErrConcurrentUpdate возвращается, когда заявку одновременно изменил другой запрос
	ErrConcurrentUpdate = errors.New("update_appointment: appointment was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
