package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// normalizeRequest обрезает пробелы и приводит контакты к каноничному виду
func normalizeRequest(req *Request) {
	req.Building = strings.TrimSpace(req.Building)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = domain.NormalizeEmail(req.Email)
	req.Phone = domain.NormalizePhone(req.Phone)
}

// validateRequest валидирует контактные данные запроса
func validateRequest(req *Request) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.Building == "" {
		return fmt.Errorf("%w: building is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	return nil
}

// validateEmail проверяет один символ @ с непустыми частями по обе стороны
func validateEmail(email string) error {
	if len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is longer than %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return fmt.Errorf("%w: email must not contain whitespace", ErrInvalidInput)
	}

	local, host, ok := strings.Cut(email, "@")
	if !ok || local == "" || host == "" || strings.Contains(host, "@") {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	return nil
}

// isSlotTaken проверяет, есть ли среди активных туров тур на то же время
func isSlotTaken(req *Request, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && b.TourTime.Equal(req.Time) {
			return true
		}
	}
	return false
}
