package export_leads

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

type LeadService interface {
	Export(ctx context.Context, req *models.ListLeadsRequest) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
