package ingest_lead

import (
	"context"
	"fmt"

	"github.com/m04kA/PrismCRM/internal/events"
	"github.com/m04kA/PrismCRM/pkg/ptr"
)

// UseCase use case для приёма лида из вебхука RentSync
type UseCase struct {
	leadRepo  LeadRepository
	publisher EventPublisher
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(leadRepo LeadRepository, publisher EventPublisher, logger Logger) *UseCase {
	return &UseCase{
		leadRepo:  leadRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute сохраняет лида из вебхука
// Каждый вебхук создает нового лида, входящие лиды не объединяются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IngestLead: RentSync webhook received, %d bytes", len(req.Payload))

	lead, err := mapPayload(req.Payload)
	if err != nil {
		uc.logger.Warn("IngestLead: %v", err)
		return nil, err
	}

	created, err := uc.leadRepo.Create(ctx, lead)
	if err != nil {
		uc.logger.Error("IngestLead: failed to save lead: %v", err)
		return nil, fmt.Errorf("%w: failed to save lead: %v", ErrInternal, err)
	}

	uc.logger.Info("IngestLead: saved lead id=%d name=%q promo=%q move-in=%q",
		created.ID, created.ProspectName, ptr.Deref(created.Promotion, ""), ptr.Deref(created.MoveInDate, ""))

	if err := uc.publisher.PublishJSON(events.EventLeadIngested, events.LeadIngestedPayload{
		LeadID: created.ID,
		Source: created.Source,
	}); err != nil {
		uc.logger.Warn("IngestLead: failed to publish event: %v", err)
	}

	return &Response{LeadID: created.ID, ProspectName: created.ProspectName}, nil
}
