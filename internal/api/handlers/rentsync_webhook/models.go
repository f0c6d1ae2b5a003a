package rentsync_webhook

import ingestLead "github.com/m04kA/PrismCRM/internal/usecase/ingest_lead"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// WebhookResponse ответ вебхука, формат ожидает RentSync
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	LeadID  int64  `json:"lead_id,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *ingestLead.Response) *WebhookResponse {
	return &WebhookResponse{
		Status:  statusSuccess,
		Message: msgIngested,
		LeadID:  resp.LeadID,
	}
}

func errorResponse(message string) *WebhookResponse {
	return &WebhookResponse{Status: statusError, Message: message}
}
