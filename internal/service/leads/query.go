package leads

import (
	"fmt"
	"strings"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

// toDomainQuery валидирует параметры выборки и заполняет значения по умолчанию
func toDomainQuery(req *models.ListLeadsRequest) (domain.LeadsQuery, error) {
	q := domain.LeadsQuery{
		SortBy:    req.SortBy,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if req.Skip < 0 {
		return q, fmt.Errorf("%w: skip must not be negative", ErrInvalidInput)
	}
	q.Skip = uint64(req.Skip)

	switch {
	case req.Limit == nil:
		q.Limit = domain.DefaultLeadsLimit
	case *req.Limit < 1 || *req.Limit > domain.MaxLeadsLimit:
		return q, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxLeadsLimit)
	default:
		q.Limit = uint64(*req.Limit)
	}

	if req.Status != nil && *req.Status != "" && *req.Status != domain.LeadStatusAll {
		status := domain.LeadStatus(*req.Status)
		if !status.IsValid() {
			return q, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		q.Status = &status
	}

	q.Search = nonEmpty(req.Search)
	q.Source = nonEmpty(req.Source)

	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return q, fmt.Errorf("%w: start_date is after end_date", ErrInvalidInput)
	}

	switch strings.ToLower(req.SortOrder) {
	case "", "desc":
		q.SortDesc = true
	case "asc":
		q.SortDesc = false
	default:
		return q, fmt.Errorf("%w: sort_order must be asc or desc", ErrInvalidInput)
	}

	return q, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
