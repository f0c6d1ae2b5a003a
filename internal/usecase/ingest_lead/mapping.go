package ingest_lead

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/ptr"
)

// object JSON объект вебхука
type object map[string]interface{}

// child возвращает вложенный объект или пустой
func (o object) child(key string) object {
	if v, ok := o[key].(map[string]interface{}); ok {
		return v
	}
	return object{}
}

// str возвращает скалярное значение ключа строкой, "" для отсутствующих и составных
func (o object) str(key string) string {
	switch v := o[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// firstOf возвращает первое непустое значение
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// mapPayload переводит вебхук RentSync в лида
// Поля ищутся сначала в data, затем в customer и source
func mapPayload(raw []byte) (*domain.Lead, error) {
	var payload object
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrInvalidPayload)
	}

	data := payload.child("data")
	customer := payload.child("customer")
	source := payload.child("source")

	name := firstOf(data.str("fullname"), customer.str("full_name"))
	if name == "" {
		first := firstOf(data.str("firstName"), customer.str("first_name"))
		last := firstOf(data.str("lastName"), customer.str("last_name"))
		name = strings.TrimSpace(first + " " + last)
	}
	if name == "" {
		name = domain.UnknownProspectName
	}

	email := domain.NormalizeEmail(firstOf(data.str("email"), customer.str("email")))
	phone := domain.NormalizePhone(firstOf(data.str("phone"), customer.str("phone")))

	return &domain.Lead{
		ProspectName:      name,
		Email:             ptr.NilIfEmpty(email),
		Phone:             ptr.NilIfEmpty(phone),
		Source:            domain.LeadSourceRentSync,
		IntegrationSource: ptr.NilIfEmpty(firstOf(data.str("source"), source.str("name"))),
		PropertyName:      ptr.NilIfEmpty(firstOf(data.str("propertyName"), source.str("ad_title"))),
		MoveInDate:        ptr.NilIfEmpty(data.str("moveInDate")),
		Promotion:         ptr.NilIfEmpty(data.str("promotionType")),
		Status:            domain.LeadStatusNew,
		RawPayload:        raw,
		SentAtRaw:         ptr.NilIfEmpty(firstOf(data.str("sentAt"), payload.str("sent_at"))),
	}, nil
}
