package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных контактных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidVisit возвращается, когда здание, дата или время не подходят расписанию
	ErrInvalidVisit = errors.New("create_booking: visit is not bookable")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
