package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// UseCase use case для получения занятых и свободных слотов туров
type UseCase struct {
	bookingRepo  BookingRepository
	schedule     *domain.TourSchedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	schedule *domain.TourSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.schedule); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: building=%q, date=%s", req.Building, date.Format(domain.DateFormat))

	// 2. Занятое время активных туров
	taken, err := uc.bookingRepo.TakenTimes(ctx, req.Building, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get taken slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get taken slots: %v", ErrInternal, err)
	}

	// 3. День закрыт, если это выходной или дата вне окна бронирования
	now := uc.timeProvider.Now()
	closed := uc.schedule.IsClosed(date) || !uc.schedule.InWindow(date, now)

	return &Response{
		Building: req.Building,
		Date:     date,
		Closed:   closed,
		Taken:    taken,
		Slots:    buildSlots(uc.schedule.TimeSlots, taken, closed),
	}, nil
}

// Dates возвращает даты для выбора тура начиная с завтрашнего дня
func (uc *UseCase) Dates() []domain.TourDate {
	return uc.schedule.AvailableDates(uc.timeProvider.Now())
}

// Buildings возвращает здания, в которые можно записаться
func (uc *UseCase) Buildings() []string {
	return uc.schedule.Buildings
}
