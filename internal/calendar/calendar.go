// Package calendar содержит чистые функции доступности слотов: без I/O и без состояния.
package calendar

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CanonicalTimeSlots возвращает копию канонического списка времён в фиксированном порядке
func CanonicalTimeSlots() []types.TimeString {
	return append([]types.TimeString(nil), domain.CanonicalTimes...)
}

// IsInFuture проверяет, что (date, time) строго позже now.
// Дата после сегодняшней подходит всегда, сегодняшняя - только если время строго позже текущего.
// Время, совпадающее с текущим до минуты, уже не подходит.
func IsInFuture(date types.Date, t types.TimeString, now time.Time) bool {
	today := types.DateOf(now)

	if date.After(today) {
		return true
	}
	if date.Before(today) {
		return false
	}

	return t.Minutes()*60 > now.Hour()*3600+now.Minute()*60+now.Second()
}

// IsBookable проверяет, что слот свободен и (date, time) в будущем относительно now
func IsBookable(set domain.ReservationSet, date types.Date, t types.TimeString, slot domain.SlotIndex, now time.Time) bool {
	key := domain.ReservationKey{Date: date, Time: t}
	if set.IsOccupied(key, slot) {
		return false
	}
	return IsInFuture(date, t, now)
}

// HasAnyBookableSlot проверяет, есть ли на дату хотя бы одна свободная пара (время, слот) в будущем.
// Дата, на которой все времена заняты или прошли, не предлагается.
func HasAnyBookableSlot(set domain.ReservationSet, date types.Date, now time.Time) bool {
	for _, t := range domain.CanonicalTimes {
		if len(AvailableSlotsFor(set, date, t, now)) > 0 {
			return true
		}
	}
	return false
}

// AvailableSlotsFor возвращает свободные слоты на (date, time) в каноническом порядке
func AvailableSlotsFor(set domain.ReservationSet, date types.Date, t types.TimeString, now time.Time) []domain.SlotIndex {
	slots := make([]domain.SlotIndex, 0, len(domain.SlotIndexes))
	for _, slot := range domain.SlotIndexes {
		if IsBookable(set, date, t, slot, now) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// AvailableTimesFor возвращает времена на дату, у которых есть хотя бы один свободный слот
func AvailableTimesFor(set domain.ReservationSet, date types.Date, now time.Time) []types.TimeString {
	times := make([]types.TimeString, 0, len(domain.CanonicalTimes))
	for _, t := range domain.CanonicalTimes {
		if len(AvailableSlotsFor(set, date, t, now)) > 0 {
			times = append(times, t)
		}
	}
	return times
}

// DateWindow возвращает days последовательных дат, начиная со start
func DateWindow(start types.Date, days int) []types.Date {
	if days <= 0 {
		return []types.Date{}
	}

	dates := make([]types.Date, days)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

// StartsAt возвращает момент начала бронирования в часовом поясе loc
func StartsAt(r domain.Reservation, loc *time.Location) time.Time {
	return r.Time.On(r.Date, loc)
}
