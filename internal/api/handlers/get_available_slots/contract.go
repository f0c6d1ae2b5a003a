package get_available_slots

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/domain"
	getAvailableSlots "github.com/m04kA/PrismCRM/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
	Dates() []domain.TourDate
	Buildings() []string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
