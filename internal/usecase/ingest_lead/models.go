package ingest_lead

// Request модель входящего вебхука RentSync
type Request struct {
	Payload []byte // Тело запроса как есть
}

// Response модель ответа с сохранённым лидом
type Response struct {
	LeadID       int64
	ProspectName string
}
