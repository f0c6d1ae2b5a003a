package ingest_lead

import (
	"context"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
