package models

import (
	"errors"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Значения поля database дашборда
const (
	DatabaseConnected   = "Connected"
	DatabaseUnavailable = "Unavailable"
	SystemOnline        = "Online"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	Building         *string
	Date             *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Building:         r.Building,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса тура
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"-"`
}

// Response модели

// BookingResponse ответ с данными тура
type BookingResponse struct {
	ID           int64   `json:"id"`
	LeadID       int64   `json:"lead_id"`
	Building     string  `json:"building"`
	Date         string  `json:"date"` // "2026-10-15"
	Time         string  `json:"time"` // "10:00"
	Status       string  `json:"status"`
	ProspectName string  `json:"prospect_name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`

	CancelledAt *string `json:"cancelled_at,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком туров
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// DashboardResponse агрегаты для админки
type DashboardResponse struct {
	TotalBookings     int64  `json:"total_bookings"`
	UpcomingBookings  int64  `json:"upcoming_bookings"`
	CancelledBookings int64  `json:"cancelled_bookings"`
	TotalLeads        int64  `json:"total_leads"`
	NewLeads          int64  `json:"new_leads"`
	ConvertedLeads    int64  `json:"converted_leads"`
	SystemStatus      string `json:"system_status"`
	Database          string `json:"database"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		LeadID:       b.LeadID,
		Building:     b.Building,
		Date:         b.TourDate.Format(domain.DateFormat),
		Time:         b.TourTime.String(),
		Status:       string(b.Status),
		ProspectName: b.ProspectName,
		Email:        b.Email,
		Phone:        b.Phone,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
