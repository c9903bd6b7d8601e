package book_slot

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда слот занят или его время уже прошло
	ErrSlotUnavailable = errors.New("book_slot: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrPersistence возвращается при ошибке хранилища. Исход бронирования неизвестен,
	// перед повтором нужно заново запросить доступность.
	ErrPersistence = errors.New("book_slot: persistence error")

	// ErrRetryExhausted возвращается, когда конкурирующие изменения не дали сохранить бронирование
	ErrRetryExhausted = errors.New("book_slot: too many concurrent modifications")
)
