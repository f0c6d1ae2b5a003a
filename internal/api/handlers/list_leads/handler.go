package list_leads

import (
	"errors"
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/service/leads"
)

const (
	msgInvalidParams = "Invalid query parameters"
	msgInvalidStatus = "Invalid lead status"
)

type Handler struct {
	service LeadService
	logger  Logger
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/leads
// Query params: skip, limit, status, search, source, start_date, end_date, sort_by, sort_order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /leads - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidStatus):
			h.logger.Warn("GET /leads - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("GET /leads - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /leads - Failed to list leads: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /leads - Leads retrieved successfully: count=%d, total=%d", len(result.Items), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
