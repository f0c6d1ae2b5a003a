package logout

import (
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/api/middleware"
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

// LogoutResponse HTTP response model
type LogoutResponse struct {
	Success bool `json:"success"`
}

// Handle POST /api/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		username = user.Username
	}

	if err := h.service.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		h.logger.Error("POST /auth/logout - Failed to log out: username=%q, error=%v", username, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/logout - User logged out: username=%q", username)
	handlers.RespondJSON(w, http.StatusOK, LogoutResponse{Success: true})
}
