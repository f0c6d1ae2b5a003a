package users

import "errors"

var (
	// ErrNotInitialized возвращается, когда файла пользователей нет
	ErrNotInitialized = errors.New("users: user db not initialized")

	// ErrCorrupted возвращается, когда файл пользователей не разбирается
	ErrCorrupted = errors.New("users: user db corrupted")

	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("users: invalid credentials")
)
