package contracts

import "errors"

var (
	// ErrContractNotFound возвращается, когда контракт не найден
	ErrContractNotFound = errors.New("contract not found")

	// ErrCorruptDocument возвращается, когда документ контракта не удаётся прочитать
	ErrCorruptDocument = errors.New("contract document cannot be mapped")

	// ErrCannotCancel возвращается, когда контракт не может быть отменён
	ErrCannotCancel = errors.New("contract cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid contract status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("contracts.service: internal error")
)
