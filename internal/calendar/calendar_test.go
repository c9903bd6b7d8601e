package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func at(date string, hour, min int) time.Time {
	d := types.MustDate(date)
	return time.Date(d.Year, d.Month, d.Day, hour, min, 0, 0, time.UTC)
}

func fullyBooked(date types.Date, t types.TimeString) domain.ReservationSet {
	set := domain.NewReservationSet()
	for _, slot := range domain.SlotIndexes {
		set.Add(domain.Reservation{Date: date, Time: t, Slot: slot, Username: "someone"})
	}
	return set
}

func TestCanonicalTimeSlots(t *testing.T) {
	slots := CanonicalTimeSlots()

	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00", "15:00", "17:00", "19:00", "21:00", "23:00"}, slots)

	slots[0] = "00:00"
	assert.Equal(t, types.TimeString("09:00"), CanonicalTimeSlots()[0])
}

func TestIsBookable_BoundaryTime(t *testing.T) {
	set := domain.NewReservationSet()
	date := types.MustDate("2024-08-04")
	now := at("2024-08-04", 11, 0)

	assert.False(t, IsBookable(set, date, "11:00", 1, now))
	assert.True(t, IsBookable(set, date, "13:00", 1, now))
	assert.False(t, IsBookable(set, date, "09:00", 1, now))
}

func TestIsBookable_SecondsPastTheSlot(t *testing.T) {
	set := domain.NewReservationSet()
	date := types.MustDate("2024-08-04")
	now := at("2024-08-04", 10, 59).Add(30 * time.Second)

	assert.True(t, IsBookable(set, date, "11:00", 1, now))
	assert.False(t, IsBookable(set, date, "11:00", 1, now.Add(31*time.Second)))
}

func TestIsBookable(t *testing.T) {
	date := types.MustDate("2024-08-05")
	occupied := domain.NewReservationSet()
	occupied.Add(domain.Reservation{Date: date, Time: "09:00", Slot: 2, Username: "a"})

	tests := []struct {
		name string
		set  domain.ReservationSet
		date types.Date
		time types.TimeString
		slot domain.SlotIndex
		want bool
	}{
		{name: "future and free", set: occupied, date: date, time: "09:00", slot: 1, want: true},
		{name: "future and occupied", set: occupied, date: date, time: "09:00", slot: 2, want: false},
		{name: "yesterday and free", set: domain.NewReservationSet(), date: types.MustDate("2024-08-03"), time: "23:00", slot: 1, want: false},
		{name: "later today", set: domain.NewReservationSet(), date: types.MustDate("2024-08-04"), time: "23:00", slot: 3, want: true},
	}

	now := at("2024-08-04", 12, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBookable(tt.set, tt.date, tt.time, tt.slot, now))
		})
	}
}

func TestAvailableSlotsFor(t *testing.T) {
	date := types.MustDate("2024-08-05")
	set := domain.NewReservationSet()
	set.Add(domain.Reservation{Date: date, Time: "15:00", Slot: 2, Username: "a"})
	now := at("2024-08-04", 12, 0)

	assert.Equal(t, []domain.SlotIndex{1, 3}, AvailableSlotsFor(set, date, "15:00", now))
	assert.Equal(t, []domain.SlotIndex{1, 2, 3}, AvailableSlotsFor(set, date, "17:00", now))
	assert.Empty(t, AvailableSlotsFor(fullyBooked(date, "15:00"), date, "15:00", now))
}

func TestAvailableTimesFor_HidesPastAndFullTimes(t *testing.T) {
	date := types.MustDate("2024-08-04")
	set := fullyBooked(date, "17:00")
	now := at("2024-08-04", 13, 0)

	assert.Equal(t, []types.TimeString{"15:00", "19:00", "21:00", "23:00"}, AvailableTimesFor(set, date, now))
}

func TestHasAnyBookableSlot(t *testing.T) {
	today := types.MustDate("2024-08-04")

	t.Run("late evening has nothing left", func(t *testing.T) {
		assert.False(t, HasAnyBookableSlot(domain.NewReservationSet(), today, at("2024-08-04", 23, 0)))
	})

	t.Run("one free slot is enough", func(t *testing.T) {
		set := fullyBooked(today, "23:00")
		set.Remove(domain.ReservationKey{Date: today, Time: "23:00"}, 3, "someone")
		assert.True(t, HasAnyBookableSlot(set, today, at("2024-08-04", 22, 0)))
	})

	t.Run("fully booked remaining times", func(t *testing.T) {
		set := fullyBooked(today, "23:00")
		assert.False(t, HasAnyBookableSlot(set, today, at("2024-08-04", 22, 0)))
	})

	t.Run("past date", func(t *testing.T) {
		assert.False(t, HasAnyBookableSlot(domain.NewReservationSet(), today.AddDays(-1), at("2024-08-04", 0, 0)))
	})
}

func TestDateWindow(t *testing.T) {
	start := types.MustDate("2024-12-30")

	window := DateWindow(start, 3)

	assert.Equal(t, []types.Date{
		types.MustDate("2024-12-30"),
		types.MustDate("2024-12-31"),
		types.MustDate("2025-01-01"),
	}, window)
	assert.Empty(t, DateWindow(start, 0))
}

func TestStartsAt(t *testing.T) {
	r := domain.Reservation{Date: types.MustDate("2024-08-04"), Time: "21:00", Slot: 1, Username: "a"}
	assert.Equal(t, at("2024-08-04", 21, 0), StartsAt(r, time.UTC))
}
