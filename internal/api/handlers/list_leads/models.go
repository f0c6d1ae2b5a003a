package list_leads

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// Диапазоны и значения по умолчанию проверяет сервис
func ToServiceRequest(query url.Values) (*models.ListLeadsRequest, error) {
	req := &models.ListLeadsRequest{
		SortBy:    strings.TrimSpace(query.Get("sort_by")),
		SortOrder: strings.TrimSpace(query.Get("sort_order")),
	}

	var err error
	if req.Skip, err = parseInt(query, "skip"); err != nil {
		return nil, err
	}
	if req.Limit, err = parseOptionalInt(query, "limit"); err != nil {
		return nil, err
	}

	req.Status = optional(query, "status")
	req.Search = optional(query, "search")
	req.Source = optional(query, "source")

	if req.StartDate, err = parseDate(query, "start_date"); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseDate(query, "end_date"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseInt(query url.Values, key string) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// parseOptionalInt nil, если параметр не передан
func parseOptionalInt(query url.Values, key string) (*int, error) {
	if strings.TrimSpace(query.Get(key)) == "" {
		return nil, nil
	}
	v, err := parseInt(query, key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseDate(query url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &d, nil
}

func optional(query url.Values, key string) *string {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}
