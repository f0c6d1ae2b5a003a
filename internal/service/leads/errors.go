package leads

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStatus возвращается при неизвестном статусе лида
	ErrInvalidStatus = errors.New("invalid lead status")

	// ErrInvalidInput возвращается при некорректных параметрах выборки
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
