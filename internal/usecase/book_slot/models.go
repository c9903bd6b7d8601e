package book_slot

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Username domain.Identity  // Пользователь от аутентификатора
	Date     types.Date       // Дата бронирования
	Time     types.TimeString // Время из канонического списка, например "11:00"
	Slot     domain.SlotIndex // Номер слота 1..3
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation domain.Reservation
	StartsAt    time.Time // Начало в локальном часовом поясе
}
