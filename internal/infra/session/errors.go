package session

import "errors"

var (
	// ErrTokenNotFound возвращается, когда refresh токен отсутствует или истёк
	ErrTokenNotFound = errors.New("session.store: token not found")

	// ErrStore возвращается при ошибке работы с хранилищем
	ErrStore = errors.New("session.store: storage failure")
)
