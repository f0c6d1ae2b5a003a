package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/service/auth"
	"github.com/m04kA/PrismCRM/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidCredentials = "Invalid credentials"
	msgUserDBMissing      = "User DB not initialized"
	msgUserDBCorrupted    = "User DB corrupted"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%q", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrUserDBNotInitialized):
			h.logger.Error("POST /auth/login - User DB not initialized")
			handlers.RespondError(w, http.StatusInternalServerError, msgUserDBMissing)

		case errors.Is(err, auth.ErrUserDBCorrupted):
			h.logger.Error("POST /auth/login - User DB corrupted")
			handlers.RespondError(w, http.StatusInternalServerError, msgUserDBCorrupted)

		default:
			h.logger.Error("POST /auth/login - Failed to log in: username=%q, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - User logged in: username=%q", result.User.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
