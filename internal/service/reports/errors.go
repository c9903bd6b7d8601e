package reports

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном типе отчета или N
	ErrInvalidInput = errors.New("reports.service: invalid input data")

	// ErrPersistence возвращается, если набор бронирований не удалось прочитать
	ErrPersistence = errors.New("reports.service: persistence error")
)
