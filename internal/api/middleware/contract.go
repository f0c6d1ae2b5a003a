package middleware

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// SessionResolver возвращает пользователя по токену сессии
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
