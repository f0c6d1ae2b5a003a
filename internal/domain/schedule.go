package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PrismCRM/pkg/types"
)

// TourSchedule описывает, где и когда можно заказать тур
type TourSchedule struct {
	Buildings      []string
	TimeSlots      []types.TimeString
	WindowDays     int
	ClosedWeekdays []time.Weekday
	Location       *time.Location
}

// TourDate элемент выпадающего списка дат
type TourDate struct {
	Date     time.Time
	Label    string
	Disabled bool
}

// HasBuilding returns true if the building is bookable
func (s *TourSchedule) HasBuilding(building string) bool {
	for _, b := range s.Buildings {
		if b == building {
			return true
		}
	}
	return false
}

// HasSlot returns true if t is one of the configured slots
func (s *TourSchedule) HasSlot(t types.TimeString) bool {
	for _, slot := range s.TimeSlots {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

// IsClosed returns true if tours are not run on the weekday of date
func (s *TourSchedule) IsClosed(date time.Time) bool {
	wd := date.Weekday()
	for _, closed := range s.ClosedWeekdays {
		if wd == closed {
			return true
		}
	}
	return false
}

// Today начало текущего дня в часовом поясе расписания
func (s *TourSchedule) Today(now time.Time) time.Time {
	local := now.In(s.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// AvailableDates возвращает WindowDays дат, начиная с завтрашнего дня
// Даты нормализованы к полуночи UTC, чтобы совпадать с колонкой DATE
func (s *TourSchedule) AvailableDates(now time.Time) []TourDate {
	today := s.Today(now)
	dates := make([]TourDate, 0, s.WindowDays)
	for i := 1; i <= s.WindowDays; i++ {
		d := today.AddDate(0, 0, i)
		dates = append(dates, TourDate{
			Date:     d,
			Label:    d.Format(DateLabelFormat),
			Disabled: s.IsClosed(d),
		})
	}
	return dates
}

// InWindow returns true if date lies in [tomorrow, today+WindowDays]
func (s *TourSchedule) InWindow(date, now time.Time) bool {
	today := s.Today(now)
	d := DateOnly(date)
	first := today.AddDate(0, 0, 1)
	last := today.AddDate(0, 0, s.WindowDays)
	return !d.Before(first) && !d.After(last)
}

// ValidateVisit проверяет, что тур в здание building на date в time можно забронировать
func (s *TourSchedule) ValidateVisit(building string, date time.Time, t types.TimeString, now time.Time) error {
	if !s.HasBuilding(building) {
		return fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
	}
	if !s.HasSlot(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, t.String())
	}
	if !s.InWindow(date, now) {
		return fmt.Errorf("%w: %s", ErrDateOutOfWindow, date.Format(DateFormat))
	}
	if s.IsClosed(date) {
		return fmt.Errorf("%w: %s", ErrDateClosed, date.Weekday())
	}
	return nil
}

func (s *TourSchedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// DateOnly отбрасывает время, сохраняя календарную дату, в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
