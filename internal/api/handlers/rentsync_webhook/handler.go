package rentsync_webhook

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
	ingestLead "github.com/m04kA/PrismCRM/internal/usecase/ingest_lead"
)

// SecretHeader заголовок с общим секретом вебхука
const SecretHeader = "X-Webhook-Secret"

const maxPayloadBytes = 1 << 20

const (
	msgIngested       = "Lead ingested successfully"
	msgInvalidPayload = "Invalid JSON payload"
	msgInvalidSecret  = "Invalid webhook secret"
	msgStorageFailure = "Failed to store lead"
)

type Handler struct {
	useCase IngestLeadUseCase
	secret  string
	logger  Logger
}

// NewHandler создает обработчик; пустой secret отключает проверку заголовка
func NewHandler(useCase IngestLeadUseCase, secret string, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		secret:  secret,
		logger:  logger,
	}
}

// Handle POST /webhooks/rentsync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.logger.Warn("POST /webhooks/rentsync - Invalid webhook secret")
			handlers.RespondJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidSecret))
			return
		}
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/rentsync - Failed to read body: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgInvalidPayload))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &ingestLead.Request{Payload: payload})
	if err != nil {
		switch {
		case errors.Is(err, ingestLead.ErrInvalidPayload):
			h.logger.Warn("POST /webhooks/rentsync - Invalid payload: %v", err)
			handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgInvalidPayload))

		default:
			h.logger.Error("POST /webhooks/rentsync - Failed to ingest lead: %v", err)
			handlers.RespondJSON(w, http.StatusInternalServerError, errorResponse(msgStorageFailure))
		}
		return
	}

	h.logger.Info("POST /webhooks/rentsync - Lead ingested: lead_id=%d, name=%q", result.LeadID, result.ProspectName)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
