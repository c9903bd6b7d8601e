package commands

import (
	"errors"
	"fmt"
)

// Коды завершения процесса
const (
	ExitOK           = 0
	ExitInternal     = 1
	ExitInvalidInput = 2
	ExitConflict     = 3
	ExitNotFound     = 4
	ExitUnauthorized = 5
	ExitUnavailable  = 6
)

const msgInternalError = "internal error, see the log for details"

// Error ошибка команды: сообщение для пользователя и код завершения
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// RespondError возвращает ошибку команды с произвольным кодом
func RespondError(code int, message string) error {
	return &Error{Code: code, Message: message}
}

// RespondInvalidInput ошибка пользовательского ввода
func RespondInvalidInput(message string) error {
	return RespondError(ExitInvalidInput, message)
}

// RespondConflict операция отклонена из-за текущего состояния
func RespondConflict(message string) error {
	return RespondError(ExitConflict, message)
}

// RespondNotFound объект не найден
func RespondNotFound(message string) error {
	return RespondError(ExitNotFound, message)
}

// RespondUnauthorized требуется вход
func RespondUnauthorized(message string) error {
	return RespondError(ExitUnauthorized, message)
}

// RespondUnavailable хранилище недоступно или перегружено
func RespondUnavailable(message string) error {
	return RespondError(ExitUnavailable, message)
}

// RespondInternalError непредвиденная ошибка, подробности только в логе
func RespondInternalError() error {
	return RespondError(ExitInternal, msgInternalError)
}

// ExitCode код завершения для ошибки команды.
// Ошибки, не созданные обработчиками, приходят от разбора аргументов cobra.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitInvalidInput
}

// IsRejection true для ошибок, вызванных вводом или состоянием, а не сбоем
func IsRejection(err error) bool {
	switch ExitCode(err) {
	case ExitInvalidInput, ExitConflict, ExitNotFound, ExitUnauthorized:
		return true
	default:
		return false
	}
}

// Message текст ошибки для вывода пользователю
func Message(err error) string {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	return fmt.Sprintf("invalid usage: %v", err)
}
