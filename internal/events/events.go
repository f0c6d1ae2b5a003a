package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
	EventLeadIngested         = "lead_ingested"
)

// BookingCreatedPayload снимок нового тура для подписчиков
type BookingCreatedPayload struct {
	BookingID  int64  `json:"booking_id"`
	LeadID     int64  `json:"lead_id"`
	LeadMerged bool   `json:"lead_merged"`
	Building   string `json:"building"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// BookingStatusPayload смена статуса тура
type BookingStatusPayload struct {
	BookingID int64  `json:"booking_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// LeadIngestedPayload лид, пришедший от интеграции
type LeadIngestedPayload struct {
	LeadID int64  `json:"lead_id"`
	Source string `json:"source"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode разбирает payload события в v
func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// Logger интерфейс для логирования ошибок подписчиков
type Logger interface {
	Error(format string, v ...interface{})
}

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	log         Logger
}

// NewEventBus constructs an empty bus.
func NewEventBus(log Logger) *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler), log: log}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
// Ошибка подписчика логируется и не останавливает остальных
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil && b.log != nil {
			b.log.Error("Event %s handler failed: %v", event.Type, err)
		}
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
