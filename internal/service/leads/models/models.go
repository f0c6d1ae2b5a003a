package models

import (
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
)

// Request модели

// ListLeadsRequest параметры выборки лидов
type ListLeadsRequest struct {
	Skip      int
	Limit     *int // nil означает значение по умолчанию
	Status    *string
	Search    *string
	Source    *string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string // asc или desc, пусто означает desc
}

// UpdateStatusRequest запрос на смену статуса лида
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// LeadResponse ответ с данными лида
type LeadResponse struct {
	ID                int64     `json:"id"`
	ProspectName      string    `json:"prospect_name"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	Source            string    `json:"source"`
	IntegrationSource *string   `json:"integration_source"`
	PropertyName      *string   `json:"property_name"`
	MoveInDate        *string   `json:"move_in_date"`
	Promotion         *string   `json:"promotion"`
	Status            string    `json:"status"`
	IsConverted       bool      `json:"is_converted"`
	SentAtRaw         *string   `json:"sent_at_raw,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// LeadListResponse страница лидов
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// Методы конвертации

// FromDomainLead конвертирует domain модель в DTO
func FromDomainLead(l *domain.Lead) *LeadResponse {
	if l == nil {
		return nil
	}

	return &LeadResponse{
		ID:                l.ID,
		ProspectName:      l.ProspectName,
		Email:             l.Email,
		Phone:             l.Phone,
		Source:            l.Source,
		IntegrationSource: l.IntegrationSource,
		PropertyName:      l.PropertyName,
		MoveInDate:        l.MoveInDate,
		Promotion:         l.Promotion,
		Status:            string(l.Status),
		IsConverted:       l.IsConverted,
		SentAtRaw:         l.SentAtRaw,
		CreatedAt:         l.CreatedAt,
	}
}

// FromDomainLeadList конвертирует список domain моделей в DTO
func FromDomainLeadList(leads []*domain.Lead) []LeadResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		if resp := FromDomainLead(l); resp != nil {
			items = append(items, *resp)
		}
	}
	return items
}
