package docstore

import "errors"

var (
	// ErrNotFound возвращается, когда документ отсутствует в коллекции
	ErrNotFound = errors.New("docstore: document not found")

	// ErrUnavailable возвращается при транспортных ошибках хранилища, такие чтения можно повторить
	ErrUnavailable = errors.New("docstore: store unavailable")

	// ErrStore возвращается при остальных ошибках хранилища
	ErrStore = errors.New("docstore: store error")

	// ErrEncode возвращается, когда документ не удаётся сериализовать
	ErrEncode = errors.New("docstore: failed to encode document")

	// ErrDecode возвращается, когда сохранённый документ не удаётся разобрать
	ErrDecode = errors.New("docstore: failed to decode document")
)
