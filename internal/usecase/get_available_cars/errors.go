package get_available_cars

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном периоде аренды
	ErrInvalidPeriod = errors.New("get_available_cars: invalid rental period")

	// ErrDateTooFarInFuture возвращается, когда начало аренды превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("get_available_cars: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_cars: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_cars: internal error")
)
