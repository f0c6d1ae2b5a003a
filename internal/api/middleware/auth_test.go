package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/auth"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeResolver struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, auth.ErrUnauthorized
}

func TestAuth(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*domain.User{
		"good": {Username: "admin", Role: "admin"},
	}}

	var seen *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := GetUser(r.Context())
		require.True(t, ok)
		seen = u
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(resolver, logger.Nop())(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer good", want: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good", want: http.StatusNoContent},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Username)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestAuth_ResolverFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("redis down")}
	h := Auth(resolver, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	r.Header.Set("Authorization", "Bearer any")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUser_Empty(t *testing.T) {
	_, ok := GetUser(context.Background())
	assert.False(t, ok)
}
