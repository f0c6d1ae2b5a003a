package export_leads

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	listLeads "github.com/m04kA/PrismCRM/internal/api/handlers/list_leads"
	"github.com/m04kA/PrismCRM/internal/service/leads"
)

const (
	msgInvalidParams = "Invalid query parameters"
	msgInvalidStatus = "Invalid lead status"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service LeadService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/leads/export
// Те же фильтры, что и у GET /api/leads, без пагинации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := listLeads.ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /leads/export - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	data, err := h.service.Export(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidStatus):
			h.logger.Warn("GET /leads/export - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("GET /leads/export - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /leads/export - Failed to export leads: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("leads_%s.xlsx", h.now().UTC().Format("20060102_150405"))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("GET /leads/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /leads/export - Export sent: file=%s, bytes=%d", filename, len(data))
}
