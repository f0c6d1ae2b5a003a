package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается для неизвестного или истёкшего токена
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrStorage возвращается при ошибке хранилища сессий
	ErrStorage = errors.New("sessions: storage error")
)
