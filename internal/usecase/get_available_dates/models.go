package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса доступных дат.
// Окно начинается со Start (по умолчанию сегодня), сдвинутого на Page окон вперед.
type Request struct {
	Start      *types.Date // Начало первой страницы, nil - сегодня
	WindowDays int         // Размер окна в днях, 0 - значение по умолчанию
	Page       int         // Номер страницы, начиная с 0
}

// Response модель ответа с датами, на которые еще можно забронировать
type Response struct {
	Start       types.Date // Первая дата окна
	WindowDays  int
	Page        int
	HasPrevious bool // Есть ли предыдущая страница
	Dates       []AvailableDate
}

// AvailableDate дата с днем недели
type AvailableDate struct {
	Date    types.Date
	Weekday time.Weekday
}
