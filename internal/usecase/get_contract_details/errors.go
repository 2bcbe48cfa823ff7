package get_contract_details

import "errors"

var (
	// ErrContractNotFound возвращается, когда контракт не найден
	ErrContractNotFound = errors.New("get_contract_details: contract not found")

	// ErrCorruptDocument возвращается, когда документ не удаётся прочитать
	ErrCorruptDocument = errors.New("get_contract_details: corrupt document")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_contract_details: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_contract_details: internal error")
)
