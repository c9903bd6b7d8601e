package cancel_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Username domain.Identity
	Date     types.Date
	Time     types.TimeString
	Slot     domain.SlotIndex
}

// Key возвращает ключ отменяемого бронирования
func (r *Request) Key() domain.ReservationKey {
	return domain.ReservationKey{Date: r.Date, Time: r.Time}
}
