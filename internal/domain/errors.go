package domain

import "errors"

var (
	// ErrUnknownBuilding возвращается для здания, которого нет в расписании
	ErrUnknownBuilding = errors.New("unknown building")

	// ErrInvalidTimeSlot возвращается для времени, не входящего в сетку слотов
	ErrInvalidTimeSlot = errors.New("time is not a bookable slot")

	// ErrDateOutOfWindow возвращается для даты вне окна бронирования
	ErrDateOutOfWindow = errors.New("date is outside the booking window")

	// ErrDateClosed возвращается для выходного дня
	ErrDateClosed = errors.New("tours are not available on this day")
)
