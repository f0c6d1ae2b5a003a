package dashboard

import (
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
)

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/dashboard - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/dashboard - Dashboard retrieved: bookings=%d, leads=%d, database=%s",
		result.TotalBookings, result.TotalLeads, result.Database)
	handlers.RespondJSON(w, http.StatusOK, result)
}
