package rentsync_webhook

import (
	"context"

	ingestLead "github.com/m04kA/PrismCRM/internal/usecase/ingest_lead"
)

type IngestLeadUseCase interface {
	Execute(ctx context.Context, req *ingestLead.Request) (*ingestLead.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
