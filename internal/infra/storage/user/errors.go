package user

import "errors"

var (
	// ErrLoad возвращается при ошибке чтения документа пользователя
	ErrLoad = errors.New("user.repository: failed to load document")

	// ErrSave возвращается при ошибке записи документа пользователя
	ErrSave = errors.New("user.repository: failed to save document")

	// ErrDelete возвращается при ошибке удаления документа пользователя
	ErrDelete = errors.New("user.repository: failed to delete document")

	// ErrInvalidUser возвращается, когда пользователь не проходит проверку перед записью
	ErrInvalidUser = errors.New("user.repository: user failed validation")
)
