package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/events"
	bookingRepo "github.com/m04kA/PrismCRM/internal/infra/storage/booking"
	leadRepo "github.com/m04kA/PrismCRM/internal/infra/storage/lead"
	"github.com/m04kA/PrismCRM/pkg/ptr"
)

// UseCase use case для бронирования тура
type UseCase struct {
	bookingRepo  BookingRepository
	leadRepo     LeadRepository
	txManager    TransactionManager
	publisher    EventPublisher
	schedule     *domain.TourSchedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	leadRepo LeadRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	schedule *domain.TourSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		leadRepo:     leadRepo,
		txManager:    txManager,
		publisher:    publisher,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования тура
// Слот и лид проверяются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: building=%q, date=%s, time=%s",
		req.Building, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация контактных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка по расписанию: здание, слот, окно дат, выходные
	now := uc.timeProvider.Now()
	if err := uc.schedule.ValidateVisit(req.Building, req.Date, req.Time, now); err != nil {
		uc.logger.Warn("CreateBooking: visit rejected: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidVisit, err)
	}

	var (
		result *domain.Booking
		lead   *domain.Lead
		merged bool
	)

	// 3. Слот, лид и тур в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// повтор транзакции начинается с чистого состояния
		result, lead, merged = nil, nil, false

		// 3.1. Блокируем активные туры здания на эту дату
		date := domain.DateOnly(req.Date)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			Building:  &req.Building,
			Date:      &date,
			ForUpdate: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if isSlotTaken(req, bookings) {
			uc.logger.Warn("CreateBooking: slot %s %s %s already taken",
				req.Building, date.Format(domain.DateFormat), req.Time)
			return ErrSlotNotAvailable
		}

		// 3.2. Ищем существующего лида по email или телефону
		lead, err = uc.leadRepo.FindByContact(txCtx, req.Email, req.Phone)
		switch {
		case err == nil:
			merged = true
			uc.logger.Info("CreateBooking: merged into existing lead id=%d", lead.ID)
		case errors.Is(err, leadRepo.ErrLeadNotFound):
			lead, err = uc.leadRepo.Create(txCtx, &domain.Lead{
				ProspectName: req.Name,
				Email:        ptr.Ptr(req.Email),
				Phone:        ptr.NilIfEmpty(req.Phone),
				Source:       domain.LeadSourceWebsiteBooking,
				Status:       domain.LeadStatusNew,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create lead: %v", err)
				return fmt.Errorf("%w: failed to create lead: %w", ErrInternal, err)
			}
		default:
			uc.logger.Error("CreateBooking: failed to find lead: %v", err)
			return fmt.Errorf("%w: failed to find lead: %w", ErrInternal, err)
		}

		// 3.3. Создаем тур
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			LeadID:   lead.ID,
			Building: req.Building,
			TourDate: date,
			TourTime: req.Time,
			Status:   domain.StatusScheduled,
		})
		if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot taken by a concurrent booking")
			return ErrSlotNotAvailable
		}
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// Контакты в ответе берутся из лида, с которым связан тур
	result.ProspectName = lead.ProspectName
	result.Email = lead.Email
	result.Phone = lead.Phone

	uc.logger.Info("CreateBooking: successfully created booking id=%d for lead id=%d (merged=%t)",
		result.ID, lead.ID, merged)

	if err := uc.publisher.PublishJSON(events.EventBookingCreated, events.BookingCreatedPayload{
		BookingID:  result.ID,
		LeadID:     lead.ID,
		LeadMerged: merged,
		Building:   result.Building,
		Date:       result.TourDate.Format(domain.DateFormat),
		Time:       result.TourTime.String(),
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event: %v", err)
	}

	return &Response{
		BookingID:  result.ID,
		LeadID:     lead.ID,
		LeadMerged: merged,
		Booking:    result,
	}, nil
}
