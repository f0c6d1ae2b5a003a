package get_available_slots

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	getAvailableSlots "github.com/m04kA/PrismCRM/internal/usecase/get_available_slots"
)

var (
	errMissingParams = errors.New("building and date are required")
	errInvalidDate   = errors.New("invalid date")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Building string          `json:"building"`
	Date     string          `json:"date"`
	Closed   bool            `json:"closed"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// TourDateResponse элемент списка дат
type TourDateResponse struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(building, dateStr string) (*getAvailableSlots.Request, error) {
	building = strings.TrimSpace(building)
	dateStr = strings.TrimSpace(dateStr)
	if building == "" || dateStr == "" {
		return nil, errMissingParams
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	return &getAvailableSlots.Request{
		Building: building,
		Date:     date,
	}, nil
}

// FromTaken возвращает занятое время, пустой список вместо null
func FromTaken(resp *getAvailableSlots.Response) []string {
	taken := make([]string, 0, len(resp.Taken))
	for _, t := range resp.Taken {
		taken = append(taken, t.String())
	}
	return taken
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Building: resp.Building,
		Date:     resp.Date.Format(domain.DateFormat),
		Closed:   resp.Closed,
		Slots:    slots,
	}
}

// FromTourDates конвертирует даты для выпадающего списка
func FromTourDates(dates []domain.TourDate) []TourDateResponse {
	resp := make([]TourDateResponse, len(dates))
	for i, d := range dates {
		resp[i] = TourDateResponse{
			Date:     d.Date.Format(domain.DateFormat),
			Label:    d.Label,
			Disabled: d.Disabled,
		}
	}
	return resp
}
