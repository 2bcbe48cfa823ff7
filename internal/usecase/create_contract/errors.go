package create_contract

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_contract: user not found")

	// ErrUserInactive возвращается, когда пользователь заблокирован или не активирован
	ErrUserInactive = errors.New("create_contract: user is not active")

	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("create_contract: car not found")

	// ErrCarNotAvailable возвращается, когда машина арендована или на обслуживании
	ErrCarNotAvailable = errors.New("create_contract: car is not available")

	// ErrCarAlreadyBooked возвращается, когда на период уже есть действующий контракт
	ErrCarAlreadyBooked = errors.New("create_contract: car is already booked for this period")

	// ErrInvalidPeriod возвращается при некорректном периоде аренды
	ErrInvalidPeriod = errors.New("create_contract: invalid rental period")

	// ErrCorruptDocument возвращается, когда связанный документ не удаётся прочитать
	ErrCorruptDocument = errors.New("create_contract: document cannot be mapped")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_contract: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_contract: internal error")
)
