package update_lead_status

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/service/leads"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

const (
	msgInvalidLeadID      = "Invalid lead ID"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidStatus      = "Invalid lead status"
	msgNotFound           = "Lead not found"
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

// Handle PATCH /api/leads/{leadId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(mux.Vars(r)["leadId"], 10, 64)
	if err != nil || leadID <= 0 {
		h.logger.Warn("PATCH /leads/{id}/status - Invalid lead ID: %q", mux.Vars(r)["leadId"])
		handlers.RespondBadRequest(w, msgInvalidLeadID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leads/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Status = strings.TrimSpace(req.Status)

	lead, err := h.service.UpdateStatus(r.Context(), leadID, &req)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidStatus):
			h.logger.Warn("PATCH /leads/{id}/status - Invalid status: lead_id=%d, status=%q", leadID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, leads.ErrLeadNotFound):
			h.logger.Warn("PATCH /leads/{id}/status - Lead not found: lead_id=%d", leadID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /leads/{id}/status - Failed to update status: lead_id=%d, error=%v", leadID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leads/{id}/status - Status updated: lead_id=%d, status=%s", leadID, lead.Status)
	handlers.RespondJSON(w, http.StatusOK, lead)
}
