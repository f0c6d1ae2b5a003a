package list_bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(building, dateStr, status, includeCancelledStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if building = strings.TrimSpace(building); building != "" {
		req.Building = &building
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.Date = &date
	}

	if status = strings.TrimSpace(status); status != "" {
		req.Status = &status
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid include_cancelled: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
