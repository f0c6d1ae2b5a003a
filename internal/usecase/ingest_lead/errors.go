package ingest_lead

import "errors"

var (
	// ErrInvalidPayload возвращается, если тело вебхука не JSON объект
	ErrInvalidPayload = errors.New("ingest_lead: invalid payload")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("ingest_lead: internal error")
)
