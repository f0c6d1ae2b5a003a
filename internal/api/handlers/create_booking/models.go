package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
	createBooking "github.com/m04kA/PrismCRM/internal/usecase/create_booking"
	"github.com/m04kA/PrismCRM/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

const statusSuccess = "success"

// CreateBookingRequest HTTP request model (BookingFormData)
type CreateBookingRequest struct {
	Building string `json:"building"`
	Date     string `json:"date"` // "2026-10-15"
	Time     string `json:"time"` // "10:00"
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Status     string                  `json:"status"`
	BookingID  int64                   `json:"booking_id"`
	LeadID     int64                   `json:"lead_id"`
	LeadMerged bool                    `json:"lead_merged"`
	Booking    *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	slot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Building: r.Building,
		Date:     date,
		Time:     slot,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Status:     statusSuccess,
		BookingID:  resp.BookingID,
		LeadID:     resp.LeadID,
		LeadMerged: resp.LeadMerged,
		Booking:    models.FromDomainBooking(resp.Booking),
	}
}
