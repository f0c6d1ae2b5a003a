package dashboard

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
)

type DashboardService interface {
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
