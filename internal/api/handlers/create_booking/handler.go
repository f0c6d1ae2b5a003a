package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	"github.com/m04kA/PrismCRM/internal/domain"
	createBooking "github.com/m04kA/PrismCRM/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDate        = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "Invalid time format, expected HH:MM"
	msgSlotNotAvailable   = "This time slot has just been booked, please choose another one"
	msgInvalidContacts    = "Name and a valid email are required"
	msgUnknownBuilding    = "Unknown building"
	msgInvalidSlot        = "Selected time is not a tour slot"
	msgDateClosed         = "Tours are not available on this day"
	msgDateOutOfWindow    = "Selected date is outside the booking window"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: building=%q, date=%s, time=%s",
				req.Building, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidVisit):
			h.logger.Warn("POST /bookings - Visit not bookable: %v", err)
			handlers.RespondBadRequest(w, visitMessage(err))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid contacts: %v", err)
			handlers.RespondBadRequest(w, inputMessage(err))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: building=%q, date=%s, error=%v",
				req.Building, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, lead_id=%d, merged=%t",
		result.BookingID, result.LeadID, result.LeadMerged)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// visitMessage подбирает текст по причине из domain
func visitMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownBuilding):
		return msgUnknownBuilding
	case errors.Is(err, domain.ErrInvalidTimeSlot):
		return msgInvalidSlot
	case errors.Is(err, domain.ErrDateClosed):
		return msgDateClosed
	default:
		return msgDateOutOfWindow
	}
}

// inputMessage отдаёт клиенту причину без префикса usecase
func inputMessage(err error) string {
	reason := strings.TrimPrefix(err.Error(), createBooking.ErrInvalidInput.Error()+": ")
	if reason == "" || reason == err.Error() {
		return msgInvalidContacts
	}
	return strings.ToUpper(reason[:1]) + reason[1:]
}
