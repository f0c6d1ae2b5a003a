package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/PrismCRM/internal/usecase/get_available_slots"
)

const (
	msgMissingParams   = "Query parameters building and date are required"
	msgInvalidDate     = "Invalid date format, expected YYYY-MM-DD"
	msgUnknownBuilding = "Unknown building"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleTaken GET /api/bookings/taken
// Query params: building (required), date (required, YYYY-MM-DD)
func (h *Handler) HandleTaken(w http.ResponseWriter, r *http.Request) {
	result, ok := h.execute(w, r, "GET /bookings/taken")
	if !ok {
		return
	}

	h.logger.Info("GET /bookings/taken - Taken slots retrieved: building=%q, date=%s, taken=%d",
		result.Building, r.URL.Query().Get("date"), len(result.Taken))
	handlers.RespondJSON(w, http.StatusOK, FromTaken(result))
}

// HandleAvailability GET /api/bookings/availability
// Query params: building (required), date (required, YYYY-MM-DD)
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	result, ok := h.execute(w, r, "GET /bookings/availability")
	if !ok {
		return
	}

	h.logger.Info("GET /bookings/availability - Slots retrieved: building=%q, date=%s, closed=%t",
		result.Building, r.URL.Query().Get("date"), result.Closed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleDates GET /api/bookings/dates
func (h *Handler) HandleDates(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromTourDates(h.useCase.Dates()))
}

// HandleBuildings GET /api/buildings
func (h *Handler) HandleBuildings(w http.ResponseWriter, r *http.Request) {
	buildings := h.useCase.Buildings()
	if buildings == nil {
		buildings = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, buildings)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string) (*getAvailableSlots.Response, bool) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(query.Get("building"), query.Get("date"))
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		if errors.Is(err, errInvalidDate) {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgMissingParams)
		}
		return nil, false
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownBuilding):
			h.logger.Warn("%s - Unknown building: %q", route, useCaseReq.Building)
			handlers.RespondBadRequest(w, msgUnknownBuilding)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("%s - Failed to get slots: building=%q, error=%v", route, useCaseReq.Building, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	return result, true
}
