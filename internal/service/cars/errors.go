package cars

import "errors"

var (
	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("car not found")

	// ErrCorruptDocument возвращается, когда документ машины не удаётся прочитать
	ErrCorruptDocument = errors.New("car document cannot be mapped")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid car status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cars.service: internal error")
)
