package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, at time.Time) error
	Stats(ctx context.Context, today time.Time) (*domain.BookingStats, error)
}

// LeadStatsRepository агрегаты лидов для дашборда
type LeadStatsRepository interface {
	Stats(ctx context.Context) (*domain.LeadStats, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger проверка доступности БД
type Pinger interface {
	PingContext(ctx context.Context) error
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
