package van

import "errors"

var (
	// ErrVanNotFound возвращается, когда фургон не найден
	ErrVanNotFound = errors.New("van.repository: van not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("van.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("van.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("van.repository: failed to scan row")
)
