package session

import "errors"

var (
	// ErrNoSession возвращается, если пользователь не вошел в систему
	ErrNoSession = errors.New("session: not logged in")

	// ErrInvalidSession возвращается, если файл сессии подделан, просрочен или подписан другим ключом
	ErrInvalidSession = errors.New("session: invalid or expired session")

	// ErrStorage возвращается при ошибках чтения или записи файлов сессии
	ErrStorage = errors.New("session: storage error")

	// ErrInvalidKey возвращается для ключа неправильной длины или кодировки
	ErrInvalidKey = errors.New("session: invalid key")
)
