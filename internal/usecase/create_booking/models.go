package create_booking

import (
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/types"
)

// Request модель запроса на бронирование тура
type Request struct {
	Building string
	Date     time.Time        // Дата тура (без времени)
	Time     types.TimeString // Время слота, например "10:00"
	Name     string
	Email    string
	Phone    string // Необязательный
}

// Response модель ответа с созданным туром
type Response struct {
	BookingID  int64
	LeadID     int64
	LeadMerged bool // Тур привязан к уже существующему лиду
	Booking    *domain.Booking
}
