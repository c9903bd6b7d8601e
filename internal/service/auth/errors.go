package auth

import "errors"

var (
	// ErrInvalidInput возвращается при пустых обязательных полях
	ErrInvalidInput = errors.New("auth.service: invalid input data")

	// ErrWeakPassword возвращается, если пароль не соответствует политике
	ErrWeakPassword = errors.New("auth.service: password must be 8-32 characters and contain a letter and a digit")

	// ErrUsernameTaken возвращается, если имя пользователя уже занято
	ErrUsernameTaken = errors.New("auth.service: username already exists")

	// ErrInvalidCredentials возвращается при неизвестном пользователе или неверном пароле
	ErrInvalidCredentials = errors.New("auth.service: invalid username or password")

	// ErrPersistence возвращается при ошибке хранилища пользователей
	ErrPersistence = errors.New("auth.service: persistence error")

	// ErrRetryExhausted возвращается, когда конкурирующие регистрации не дали сохранить пользователя
	ErrRetryExhausted = errors.New("auth.service: too many concurrent modifications")
)
