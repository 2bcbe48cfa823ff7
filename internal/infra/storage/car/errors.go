package car

import "errors"

var (
	// ErrLoad возвращается при ошибке чтения документа машины
	ErrLoad = errors.New("car.repository: failed to load document")

	// ErrSave возвращается при ошибке записи документа машины
	ErrSave = errors.New("car.repository: failed to save document")

	// ErrDelete возвращается при ошибке удаления документа машины
	ErrDelete = errors.New("car.repository: failed to delete document")

	// ErrInvalidCar возвращается, когда машина не проходит проверку перед записью
	ErrInvalidCar = errors.New("car.repository: car failed validation")
)
