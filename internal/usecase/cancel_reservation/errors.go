package cancel_reservation

import "errors"

var (
	// ErrNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrPersistence возвращается при ошибке хранилища
	ErrPersistence = errors.New("cancel_reservation: persistence error")

	// ErrRetryExhausted возвращается, когда конкурирующие изменения не дали сохранить отмену
	ErrRetryExhausted = errors.New("cancel_reservation: too many concurrent modifications")
)
