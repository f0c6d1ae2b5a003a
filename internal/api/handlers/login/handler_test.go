package login

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/service/auth"
	"github.com/m04kA/PrismCRM/internal/service/auth/models"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeService struct {
	got *models.LoginRequest
	err error
}

func (f *fakeService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{
		Success:   true,
		User:      models.UserResponse{Username: req.Username, Role: "admin"},
		Token:     "tok",
		ExpiresAt: time.Date(2026, 10, 15, 15, 0, 0, 0, time.UTC),
	}, nil
}

func serve(svc AuthService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"username": "admin", "password": "secret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"user": {"username": "admin", "role": "admin"},
		"token": "tok",
		"expires_at": "2026-10-15T15:00:00Z"
	}`, w.Body.String())
	assert.Equal(t, "secret", svc.got.Password)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "bad body", body: `nope`, want: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "wrong password", body: `{"username": "admin", "password": "x"}`, err: auth.ErrInvalidCredentials, want: http.StatusUnauthorized, wantMsg: msgInvalidCredentials},
		{name: "no users file", body: `{"username": "admin", "password": "x"}`, err: auth.ErrUserDBNotInitialized, want: http.StatusInternalServerError, wantMsg: msgUserDBMissing},
		{name: "broken users file", body: `{"username": "admin", "password": "x"}`, err: auth.ErrUserDBCorrupted, want: http.StatusInternalServerError, wantMsg: msgUserDBCorrupted},
		{name: "session store down", body: `{"username": "admin", "password": "x"}`, err: auth.ErrInternal, want: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"code": %d, "message": %q}`, tt.want, tt.wantMsg), w.Body.String())
		})
	}
}
