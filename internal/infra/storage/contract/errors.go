package contract

import "errors"

var (
	// ErrLoad возвращается при ошибке чтения документа контракта
	ErrLoad = errors.New("contract.repository: failed to load document")

	// ErrSave возвращается при ошибке записи документа контракта
	ErrSave = errors.New("contract.repository: failed to save document")

	// ErrDelete возвращается при ошибке удаления документа контракта
	ErrDelete = errors.New("contract.repository: failed to delete document")

	// ErrInvalidContract возвращается, когда контракт не проходит проверку перед записью
	ErrInvalidContract = errors.New("contract.repository: contract failed validation")
)
