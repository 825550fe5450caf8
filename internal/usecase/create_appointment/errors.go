package create_appointment

import "errors"

var (
	// ErrUserNotFound возвращается, когда владелец заявки не найден
	ErrUserNotFound = errors.New("create_appointment: user not found")

	// ErrInvalidDate возвращается, когда день уже прошёл или время уже наступило
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в список дневных слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот заполнен (в том числе при конкурентной записи)
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
