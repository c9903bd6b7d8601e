package get_available_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне или номере страницы
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrPersistence возвращается, если набор бронирований не удалось прочитать
	ErrPersistence = errors.New("get_available_dates: persistence error")
)
