package update_booking_status

import (
	"strings"

	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(changedBy string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Status:    strings.TrimSpace(r.Status),
		ChangedBy: changedBy,
	}
}
