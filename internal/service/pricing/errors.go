package pricing

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах расчёта
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
