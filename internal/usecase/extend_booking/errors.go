package extend_booking

import "errors"

var (
	// ErrContractNotFound возвращается, когда контракт не найден
	ErrContractNotFound = errors.New("extend_booking: contract not found")

	// ErrContractNotActive возвращается, когда продлевают неактивный контракт
	ErrContractNotActive = errors.New("extend_booking: contract is not active")

	// ErrCarNotFound возвращается, когда машина контракта не найдена
	ErrCarNotFound = errors.New("extend_booking: car not found")

	// ErrInvalidEndDate возвращается, когда новая дата окончания не позже текущей
	ErrInvalidEndDate = errors.New("extend_booking: new end date must be after the current end date")

	// ErrCarAlreadyBooked возвращается, когда продление пересекается с другим контрактом машины
	ErrCarAlreadyBooked = errors.New("extend_booking: car is booked by another contract")

	// ErrCorruptDocument возвращается, когда связанный документ не удаётся прочитать
	ErrCorruptDocument = errors.New("extend_booking: document cannot be mapped")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
