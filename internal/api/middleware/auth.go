package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/auth"
)

const msgUnauthorized = "Not authenticated"

type userKey struct{}

// Auth пропускает только запросы с действующим Bearer токеном
// Пользователь сессии кладётся в контекст, см. GetUser
func Auth(resolver SessionResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					logger.Warn("%s %s - Unknown or expired session", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgUnauthorized)
					return
				}
				logger.Error("%s %s - Failed to resolve session: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// BearerToken извлекает токен из заголовка Authorization
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// WithUser кладёт пользователя в контекст
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser возвращает пользователя, положенного Auth
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*domain.User)
	return user, ok && user != nil
}
