package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserDBNotInitialized возвращается, когда файла пользователей нет
	ErrUserDBNotInitialized = errors.New("auth: user db not initialized")

	// ErrUserDBCorrupted возвращается, когда файл пользователей не разбирается
	ErrUserDBCorrupted = errors.New("auth: user db corrupted")

	// ErrUnauthorized возвращается для неизвестного или истёкшего токена
	ErrUnauthorized = errors.New("auth: unauthorized")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
