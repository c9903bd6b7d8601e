package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrPersistence возвращается, если набор бронирований не удалось прочитать
	ErrPersistence = errors.New("get_available_slots: persistence error")
)
