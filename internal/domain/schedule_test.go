package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/pkg/types"
)

func testSchedule() *TourSchedule {
	return &TourSchedule{
		Buildings: []string{"80 Bond St E", "100 Bond St E"},
		TimeSlots: []types.TimeString{
			types.MustTimeString("09:00"),
			types.MustTimeString("10:00"),
			types.MustTimeString("13:00"),
		},
		WindowDays:     14,
		ClosedWeekdays: []time.Weekday{time.Sunday},
		Location:       time.UTC,
	}
}

// Среда, 14 октября 2026
var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailableDates(t *testing.T) {
	dates := testSchedule().AvailableDates(now)

	require.Len(t, dates, 14)
	assert.Equal(t, day(15), dates[0].Date)
	assert.Equal(t, "Thu, Oct 15", dates[0].Label)
	assert.False(t, dates[0].Disabled)
	assert.Equal(t, day(28), dates[13].Date)

	for _, d := range dates {
		assert.Equal(t, d.Date.Weekday() == time.Sunday, d.Disabled, d.Label)
	}
	assert.True(t, dates[3].Disabled, "18 октября - воскресенье")
}

func TestAvailableDatesUsesScheduleTimezone(t *testing.T) {
	s := testSchedule()
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	s.Location = loc

	// 02:00 UTC 15 октября - это ещё 14 октября в Торонто
	dates := s.AvailableDates(time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, day(15), dates[0].Date)
}

func TestValidateVisit(t *testing.T) {
	s := testSchedule()
	ten := types.MustTimeString("10:00")

	tests := []struct {
		name     string
		building string
		date     time.Time
		time     types.TimeString
		wantErr  error
	}{
		{name: "ok", building: "80 Bond St E", date: day(15), time: ten},
		{name: "last day of window", building: "100 Bond St E", date: day(28), time: ten},
		{name: "unknown building", building: "1 Main St", date: day(15), time: ten, wantErr: ErrUnknownBuilding},
		{name: "not a slot", building: "80 Bond St E", date: day(15), time: types.MustTimeString("10:30"), wantErr: ErrInvalidTimeSlot},
		{name: "today", building: "80 Bond St E", date: day(14), time: ten, wantErr: ErrDateOutOfWindow},
		{name: "past", building: "80 Bond St E", date: day(1), time: ten, wantErr: ErrDateOutOfWindow},
		{name: "beyond window", building: "80 Bond St E", date: day(29), time: ten, wantErr: ErrDateOutOfWindow},
		{name: "sunday", building: "80 Bond St E", date: day(18), time: ten, wantErr: ErrDateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateVisit(tt.building, tt.date, tt.time, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingTransitions(t *testing.T) {
	b := &Booking{Status: StatusScheduled}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanTransitionTo(StatusCancelled))
	assert.True(t, b.CanTransitionTo(StatusCompleted))
	assert.True(t, b.CanTransitionTo(StatusNoShow))
	assert.False(t, b.CanTransitionTo(StatusScheduled))
	assert.False(t, b.CanTransitionTo("Pending"))

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.False(t, b.CanTransitionTo(StatusCompleted))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "(555) 123-4567", NormalizePhone(" (555) 123-4567\t"))
	assert.True(t, LeadStatusConverted.IsValid())
	assert.False(t, LeadStatus("All").IsValid())
}

func TestSessionExpiry(t *testing.T) {
	s := Session{ExpiresAt: now}
	assert.True(t, s.IsExpired(now))
	assert.False(t, s.IsExpired(now.Add(-time.Second)))
}
