package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/events"
	bookingRepo "github.com/m04kA/PrismCRM/internal/infra/storage/booking"
	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
)

// Service сервис админки для работы с турами
type Service struct {
	bookingRepo  BookingRepository
	leadRepo     LeadStatsRepository
	txManager    TransactionManager
	db           Pinger
	publisher    EventPublisher
	schedule     *domain.TourSchedule
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	leadRepo LeadStatsRepository,
	txManager TransactionManager,
	db Pinger,
	publisher EventPublisher,
	schedule *domain.TourSchedule,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		leadRepo:     leadRepo,
		txManager:    txManager,
		db:           db,
		publisher:    publisher,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает тур по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает туры по фильтру, по возрастанию даты и времени
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, ErrInvalidStatus
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус тура
// Из Scheduled разрешён переход в Completed, Cancelled или NoShow, финальные статусы не меняются
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	s.logger.Info("UpdateStatus: booking id=%d -> %s by %s", id, next, req.ChangedBy)

	var (
		previous domain.BookingStatus
		result   *domain.Booking
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Внутри транзакции строка блокируется FOR UPDATE
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		if !booking.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", id, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		now := s.timeProvider.Now().UTC()
		if err := s.bookingRepo.UpdateStatus(txCtx, id, next, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}

		previous = booking.Status
		booking.Status = next
		booking.UpdatedAt = now
		if next == domain.StatusCancelled {
			booking.CancelledAt = &now
		}
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition):
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("UpdateStatus: %v", err)
			return nil, err
		default:
			s.logger.Error("UpdateStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: UpdateStatus - transaction: %v", ErrInternal, err)
		}
	}

	if err := s.publisher.PublishJSON(events.EventBookingStatusChanged, events.BookingStatusPayload{
		BookingID: id,
		From:      string(previous),
		To:        string(next),
		ChangedBy: req.ChangedBy,
	}); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish event: %v", err)
	}

	s.logger.Info("UpdateStatus: booking id=%d changed %s -> %s", id, previous, next)
	return models.FromDomainBooking(result), nil
}

// Dashboard собирает агрегаты туров и лидов
// Если БД недоступна, счётчики нулевые, а database = Unavailable
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	resp := &models.DashboardResponse{
		SystemStatus: models.SystemOnline,
		Database:     models.DatabaseConnected,
	}

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("Dashboard: database unavailable: %v", err)
		resp.Database = models.DatabaseUnavailable
		return resp, nil
	}

	today := s.schedule.Today(s.timeProvider.Now())

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookingStats, err := s.bookingRepo.Stats(txCtx, today)
		if err != nil {
			return fmt.Errorf("booking stats: %v", err)
		}
		leadStats, err := s.leadRepo.Stats(txCtx)
		if err != nil {
			return fmt.Errorf("lead stats: %v", err)
		}

		resp.TotalBookings = bookingStats.Total
		resp.UpcomingBookings = bookingStats.Upcoming
		resp.CancelledBookings = bookingStats.Cancelled
		resp.TotalLeads = leadStats.Total
		resp.NewLeads = leadStats.New
		resp.ConvertedLeads = leadStats.Converted
		return nil
	})
	if err != nil {
		s.logger.Error("Dashboard: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - %v", ErrInternal, err)
	}

	return resp, nil
}
