package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrCorruptDocument возвращается, когда документ пользователя не удаётся прочитать
	ErrCorruptDocument = errors.New("user document cannot be mapped")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInsufficientFunds возвращается, когда на кошельке недостаточно средств
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users.service: internal error")
)
