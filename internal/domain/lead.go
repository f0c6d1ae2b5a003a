package domain

import (
	"strings"
	"time"
)

// LeadStatus represents the sales pipeline stage of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusToured    LeadStatus = "Toured"
	LeadStatusConverted LeadStatus = "Converted"
	LeadStatusLost      LeadStatus = "Lost"

	// LeadStatusAll псевдостатус фильтра "без фильтра"
	LeadStatusAll = "All"
)

// Источники лидов
const (
	LeadSourceWebsiteBooking = "Website Booking"
	LeadSourceRentSync       = "RentSync"
)

// UnknownProspectName имя лида, если источник его не прислал
const UnknownProspectName = "Unknown Prospect"

// Lead represents a prospect captured by the CRM
type Lead struct {
	ID                int64
	ProspectName      string
	Email             *string
	Phone             *string
	Source            string
	IntegrationSource *string
	PropertyName      *string
	MoveInDate        *string
	Promotion         *string
	Status            LeadStatus
	IsConverted       bool
	RawPayload        []byte // исходный JSON вебхука
	SentAtRaw         *string
	CreatedAt         time.Time
}

// IsValid returns true for a known lead status
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusToured, LeadStatusConverted, LeadStatusLost:
		return true
	default:
		return false
	}
}

// LeadsQuery параметры выборки лидов для админки
type LeadsQuery struct {
	Skip      uint64
	Limit     uint64
	Status    *LeadStatus
	Search    *string
	Source    *string
	StartDate *time.Time // включительно
	EndDate   *time.Time // включительно
	SortBy    string
	SortDesc  bool
}

// LeadStats агрегаты для дашборда
type LeadStats struct {
	Total     int64
	New       int64
	Converted int64
}

// NormalizeEmail приводит email к каноничному виду для сравнения
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone убирает пробелы по краям
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
