package leads

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, q domain.LeadsQuery) ([]*domain.Lead, error)
	Count(ctx context.Context, q domain.LeadsQuery) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus, isConverted bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
