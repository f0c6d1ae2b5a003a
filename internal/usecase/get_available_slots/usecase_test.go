package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookings struct {
	taken    []types.TimeString
	err      error
	building string
	date     time.Time
}

func (f *fakeBookings) TakenTimes(_ context.Context, building string, date time.Time) ([]types.TimeString, error) {
	f.building, f.date = building, date
	return f.taken, f.err
}

func newUseCase(repo BookingRepository) *UseCase {
	uc := NewUseCase(repo, &domain.TourSchedule{
		Buildings: []string{"80 Bond St E", "100 Bond St E"},
		TimeSlots: []types.TimeString{
			types.MustTimeString("09:00"), types.MustTimeString("10:00"), types.MustTimeString("11:00"),
		},
		WindowDays:     14,
		ClosedWeekdays: []time.Weekday{time.Sunday},
		Location:       time.UTC,
	}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_MarksTakenSlots(t *testing.T) {
	repo := &fakeBookings{taken: []types.TimeString{types.MustTimeString("10:00")}}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		Building: " 80 Bond St E ",
		Date:     time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "80 Bond St E", repo.building)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), repo.date)
	assert.False(t, resp.Closed)
	assert.Equal(t, []domain.AvailableSlot{
		{Time: types.MustTimeString("09:00"), Available: true},
		{Time: types.MustTimeString("10:00"), Available: false},
		{Time: types.MustTimeString("11:00"), Available: true},
	}, resp.Slots)
	assert.Len(t, resp.Taken, 1)
}

func TestExecute_ClosedDay(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{name: "sunday", date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{name: "today", date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
		{name: "beyond window", date: time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(&fakeBookings{})

			resp, err := uc.Execute(context.Background(), &Request{Building: "100 Bond St E", Date: tt.date})
			require.NoError(t, err)

			assert.True(t, resp.Closed)
			for _, slot := range resp.Slots {
				assert.False(t, slot.Available, slot.Time.String())
			}
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		repo    *fakeBookings
		req     *Request
		wantErr error
	}{
		{name: "missing building", repo: &fakeBookings{}, req: &Request{Date: date}, wantErr: ErrInvalidInput},
		{name: "missing date", repo: &fakeBookings{}, req: &Request{Building: "80 Bond St E"}, wantErr: ErrInvalidInput},
		{name: "unknown building", repo: &fakeBookings{}, req: &Request{Building: "1 Yonge St", Date: date}, wantErr: ErrUnknownBuilding},
		{name: "storage", repo: &fakeBookings{err: errors.New("db down")}, req: &Request{Building: "80 Bond St E", Date: date}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(tt.repo).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDates(t *testing.T) {
	uc := newUseCase(&fakeBookings{})

	dates := uc.Dates()
	require.Len(t, dates, 14)
	assert.Equal(t, "Thu, Oct 15", dates[0].Label)
	assert.True(t, dates[3].Disabled) // воскресенье 18 октября
	assert.Equal(t, []string{"80 Bond St E", "100 Bond St E"}, uc.Buildings())
}
