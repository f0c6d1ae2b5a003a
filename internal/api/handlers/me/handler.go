package me

import (
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/api/middleware"
	"github.com/m04kA/PrismCRM/internal/service/auth/models"
)

const msgUnauthorized = "Not authenticated"

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /auth/me - No user in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.UserResponse{
		Username: user.Username,
		Role:     user.Role,
	})
}
