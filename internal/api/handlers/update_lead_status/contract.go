package update_lead_status

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

type LeadService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
