package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ListReservationsRequest запрос бронирований пользователя по горизонту
type ListReservationsRequest struct {
	Username domain.Identity
	Horizon  domain.Horizon
	Now      time.Time // Граница между прошлым и будущим
}

// ReservationResponse бронирование для вывода
type ReservationResponse struct {
	Date     types.Date
	Time     types.TimeString
	Slot     domain.SlotIndex
	Weekday  time.Weekday
	StartsAt time.Time
}

// ReservationListResponse бронирования в порядке возрастания (дата, время)
type ReservationListResponse struct {
	Horizon      domain.Horizon
	Reservations []ReservationResponse
}

// FromDomainReservation конвертирует бронирование; начало вычисляется в часовом поясе loc
func FromDomainReservation(r domain.Reservation, loc *time.Location) ReservationResponse {
	return ReservationResponse{
		Date:     r.Date,
		Time:     r.Time,
		Slot:     r.Slot,
		Weekday:  r.Date.Weekday(),
		StartsAt: calendar.StartsAt(r, loc),
	}
}
