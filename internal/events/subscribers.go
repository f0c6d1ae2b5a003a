package events

import (
	"github.com/m04kA/PrismCRM/pkg/metrics"
)

// AuditLogger интерфейс для журнала аудита
type AuditLogger interface {
	Info(format string, v ...interface{})
}

// RegisterMetrics подписывает бизнес счётчики на события
func RegisterMetrics(bus *EventBus, m *metrics.Metrics) {
	bus.Subscribe(EventBookingCreated, func(_ *Event) error {
		m.BookingsCreated.Inc()
		return nil
	})

	bus.Subscribe(EventBookingStatusChanged, func(event *Event) error {
		var p BookingStatusPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		m.BookingStatusChanges.WithLabelValues(p.To).Inc()
		return nil
	})

	bus.Subscribe(EventLeadIngested, func(event *Event) error {
		var p LeadIngestedPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		m.LeadsIngested.WithLabelValues(p.Source).Inc()
		return nil
	})
}

// RegisterAudit пишет строку аудита на каждое событие
func RegisterAudit(bus *EventBus, log AuditLogger) {
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		var p BookingCreatedPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		log.Info("audit: booking %d created for lead %d (merged=%t) at %s %s %s",
			p.BookingID, p.LeadID, p.LeadMerged, p.Building, p.Date, p.Time)
		return nil
	})

	bus.Subscribe(EventBookingStatusChanged, func(event *Event) error {
		var p BookingStatusPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		log.Info("audit: booking %d status %s -> %s by %s", p.BookingID, p.From, p.To, p.ChangedBy)
		return nil
	})

	bus.Subscribe(EventLeadIngested, func(event *Event) error {
		var p LeadIngestedPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		log.Info("audit: lead %d ingested from %s", p.LeadID, p.Source)
		return nil
	})
}
