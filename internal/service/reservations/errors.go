package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrPersistence возвращается, если набор бронирований не удалось прочитать
	ErrPersistence = errors.New("reservations.service: persistence error")
)
