package events

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/pkg/metrics"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordLogger) Error(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus(nil)

	var received *Event
	bus.Subscribe(EventLeadIngested, func(event *Event) error {
		received = event
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventLeadIngested, LeadIngestedPayload{LeadID: 7, Source: "RentSync"}))
	require.NotNil(t, received)
	assert.Equal(t, EventLeadIngested, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var p LeadIngestedPayload
	require.NoError(t, received.Decode(&p))
	assert.Equal(t, int64(7), p.LeadID)
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	log := &recordLogger{}
	bus := NewEventBus(log)

	var calls int
	bus.Subscribe(EventBookingCreated, func(_ *Event) error { return errors.New("boom") })
	bus.Subscribe(EventBookingCreated, func(_ *Event) error { calls++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingCreatedPayload{BookingID: 1}))
	assert.Equal(t, 1, calls)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "boom")
}

func TestEventBus_NilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}

func TestRegisterMetrics(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	bus := NewEventBus(nil)
	RegisterMetrics(bus, m)

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingCreatedPayload{BookingID: 1}))
	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingCreatedPayload{BookingID: 2}))
	require.NoError(t, bus.PublishJSON(EventBookingStatusChanged, BookingStatusPayload{BookingID: 1, From: "Scheduled", To: "Cancelled"}))
	require.NoError(t, bus.PublishJSON(EventLeadIngested, LeadIngestedPayload{LeadID: 3, Source: "RentSync"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingStatusChanges.WithLabelValues("Cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LeadsIngested.WithLabelValues("RentSync")))
}

func TestRegisterAudit(t *testing.T) {
	log := &recordLogger{}
	bus := NewEventBus(nil)
	RegisterAudit(bus, log)

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingCreatedPayload{
		BookingID: 5, LeadID: 9, LeadMerged: true, Building: "Prism Tower", Date: "2026-10-15", Time: "10:00",
	}))
	require.NoError(t, bus.PublishJSON(EventBookingStatusChanged, BookingStatusPayload{
		BookingID: 5, From: "Scheduled", To: "Completed", ChangedBy: "admin",
	}))

	require.Len(t, log.lines, 2)
	assert.Equal(t, "audit: booking 5 created for lead 9 (merged=true) at Prism Tower 2026-10-15 10:00", log.lines[0])
	assert.Equal(t, "audit: booking 5 status Scheduled -> Completed by admin", log.lines[1])
}
