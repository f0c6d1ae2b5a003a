package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Logging проставляет X-Request-ID и пишет строку лога на каждый запрос
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			recorder := newStatusRecorder(w)
			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
			next.ServeHTTP(recorder, r.WithContext(ctx))

			duration := time.Since(start)
			switch {
			case recorder.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d in %s request_id=%s", r.Method, r.URL.Path, recorder.status, duration, requestID)
			case recorder.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d in %s request_id=%s", r.Method, r.URL.Path, recorder.status, duration, requestID)
			default:
				logger.Info("%s %s - %d in %s request_id=%s", r.Method, r.URL.Path, recorder.status, duration, requestID)
			}
		})
	}
}

// GetRequestID возвращает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
