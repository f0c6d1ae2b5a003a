package domain

import (
	"time"

	"github.com/m04kA/PrismCRM/pkg/types"
)

// BookingStatus represents the status of a tour booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "Scheduled"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusNoShow    BookingStatus = "NoShow"
)

// Booking represents a scheduled tour of a building
type Booking struct {
	ID       int64
	LeadID   int64
	Building string
	TourDate time.Time
	TourTime types.TimeString
	Status   BookingStatus

	// Данные лида (заполняются при чтении через JOIN)
	ProspectName string
	Email        *string
	Phone        *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo returns true if the booking may move to the given status
// Из Scheduled можно перейти в любой финальный статус, финальные статусы не меняются
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return b.Status == StatusScheduled && next != StatusScheduled && next.IsValid()
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// BookingsFilter фильтр списка бронирований для админки
type BookingsFilter struct {
	Building         *string
	Date             *time.Time
	Status           *BookingStatus
	IncludeCancelled bool
	ForUpdate        bool // блокировать найденные строки (только внутри транзакции)
}

// BookingStats агрегаты для дашборда
type BookingStats struct {
	Total     int64
	Upcoming  int64
	Cancelled int64
}
