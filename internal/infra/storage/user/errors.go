package user

import "errors"

var (
	// ErrMalformedDocument возвращается, если документ пользователей поврежден
	ErrMalformedDocument = errors.New("user.repository: malformed users document")

	// ErrLoad возвращается при ошибке чтения документа пользователей
	ErrLoad = errors.New("user.repository: failed to load users")

	// ErrSave возвращается при ошибке записи документа пользователей
	ErrSave = errors.New("user.repository: failed to save users")
)
